package dbmodels

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Candidate резюме кандидата, существует независимо от процессов подбора
type Candidate struct {
	BaseModel
	FirstName      string         `gorm:"type:varchar(255)"`
	LastName       string         `gorm:"type:varchar(255)"`
	MiddleName     string         `gorm:"type:varchar(255)"`
	Phone          string         `gorm:"type:varchar(255)"`
	Email          string         `gorm:"type:varchar(255);index"`
	DesiredRole    string         `gorm:"type:varchar(255)"`
	Skills         pq.StringArray `gorm:"type:text[]"`
	Comment        string
	ResumeFileName string `gorm:"type:varchar(255)"`
}

func (c Candidate) GetFIO() string {
	fio := fmt.Sprintf("%v %v %v", c.LastName, c.FirstName, c.MiddleName)
	return strings.Join(strings.Fields(fio), " ")
}

func (c Candidate) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}
