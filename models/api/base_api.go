package apimodels

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //для списков, общее кол-во записей, учитывая фильтр (если он есть)
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице
	Page  int `json:"page"`  // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

var Validate = validator.New()

// ValidateStruct проверка тегов validate, fieldNames - названия полей для сообщения об ошибке
func ValidateStruct(data interface{}, fieldNames map[string]string) error {
	err := Validate.Struct(data)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errors.Wrap(err, "ошибка проверки данных")
	}
	fieldErr := validationErrs[0]
	name, ok := fieldNames[fieldErr.Field()]
	if !ok {
		name = fieldErr.Field()
	}
	switch fieldErr.Tag() {
	case "required":
		return errors.Errorf("не указано поле '%v'", name)
	case "email":
		return errors.Errorf("некорректный емайл в поле '%v'", name)
	case "max":
		return errors.Errorf("превышена длина поля '%v'", name)
	default:
		return errors.Errorf("некорректное значение поля '%v'", name)
	}
}
