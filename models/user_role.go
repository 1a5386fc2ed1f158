package models

type UserRole string

const (
	HrAdminRole  UserRole = "hr_admin"
	HrUserRole   UserRole = "hr_user"
	ReviewerRole UserRole = "reviewer"
)

var roleHumanName = map[UserRole]string{
	HrAdminRole:  "Администратор подбора",
	HrUserRole:   "Рекрутер",
	ReviewerRole: "Согласующий",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) CanConfigure() bool {
	return r == HrAdminRole
}

const SystemUser = "Система"
