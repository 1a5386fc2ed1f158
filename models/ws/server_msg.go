package wsmodels

const (
	CodeBoardChanged     = "board_changed"
	CodeCandidateChanged = "candidate_changed"
)

type ServerMessage struct {
	ToUserID  string `json:"-"`
	Time      string `json:"time"`                 // время события
	Code      string `json:"code"`                 // код события
	Msg       string `json:"msg"`                  // текст события
	ProcessID string `json:"process_id,omitempty"` // процесс подбора, для board_changed
	Entity    string `json:"entity,omitempty"`     // process / stage / candidate / association
	EntityID  string `json:"entity_id,omitempty"`  // идентификатор измененной записи
}

const (
	ClientSelectProcess = "select_process"
	ClientCancelMove    = "cancel_move"
)

// ClientMessage команда оператора, пришедшая по websocket
type ClientMessage struct {
	Code      string `json:"code"`                 // select_process / cancel_move
	ProcessID string `json:"process_id,omitempty"` // для select_process
}
