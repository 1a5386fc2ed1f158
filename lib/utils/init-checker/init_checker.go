package initchecker

import (
	"reflect"

	"github.com/pkg/errors"
)

// Dependency именованная зависимость обработчика
type Dependency struct {
	Name  string
	Value any
}

func Dep(name string, value any) Dependency {
	return Dependency{Name: name, Value: value}
}

// Check возвращает ошибку для первой неинициализированной зависимости
func Check(deps ...Dependency) error {
	for _, dep := range deps {
		if isNil(dep.Value) {
			return errors.Errorf("зависимость %v не инициализирована", dep.Name)
		}
	}
	return nil
}

// MustCheck используется при старте сервиса
func MustCheck(deps ...Dependency) {
	if err := Check(deps...); err != nil {
		panic(err)
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
