package forms

import (
	"errors"
	"reflect"
)

// Пакет forms моделирует жизненный цикл формы-карточки сущности:
// новая запись всегда редактируемая, существующая открывается
// в режиме просмотра и разблокируется явным действием.

// Mode — режим формы
type Mode string

const (
	// Нет сохраненной записи: поля всегда активны, отправка создает запись
	ModeCreateEditable Mode = "create"
	// Запись существует: поля заблокированы до явного "Начать редактирование"
	ModeViewLocked Mode = "view"
	// Запись существует и разблокирована: отправка обновляет запись
	ModeEditUnlocked Mode = "edit"
)

var (
	ErrNotLocked      = errors.New("форма не в режиме просмотра")
	ErrSubmitBlocked  = errors.New("отправка недоступна: нет изменений или есть ошибки")
	ErrSubmitInFlight = errors.New("отправка уже выполняется")
	ErrNoActiveSubmit = errors.New("нет активной отправки")
	ErrInputsDisabled = errors.New("поля формы заблокированы")
)

// Form — явное состояние формы: значения, исходные значения, ошибки полей.
// Сравнение с исходными значениями дает признак dirty, пустая карта ошибок — valid
type Form struct {
	mode     Mode
	values   map[string]interface{}
	initial  map[string]interface{}
	errors   map[string]string
	inFlight bool
}

// New создает форму. hasBackingID == false означает новую запись —
// она всегда открывается в редактируемом режиме
func New(initial map[string]interface{}, hasBackingID bool) *Form {
	mode := ModeCreateEditable
	if hasBackingID {
		mode = ModeViewLocked
	}

	f := &Form{
		mode:    mode,
		values:  map[string]interface{}{},
		initial: map[string]interface{}{},
		errors:  map[string]string{},
	}
	for k, v := range initial {
		f.values[k] = v
		f.initial[k] = v
	}
	return f
}

func (f *Form) Mode() Mode { return f.mode }

// InputsDisabled сообщает, должны ли поля быть неактивны
func (f *Form) InputsDisabled() bool {
	return f.mode == ModeViewLocked
}

// Get возвращает текущее значение поля
func (f *Form) Get(field string) interface{} {
	return f.values[field]
}

// Set изменяет значение поля. В режиме просмотра изменения не принимаются
func (f *Form) Set(field string, value interface{}) error {
	if f.InputsDisabled() {
		return ErrInputsDisabled
	}
	f.values[field] = value
	return nil
}

// SetError фиксирует ошибку валидации поля
func (f *Form) SetError(field, message string) {
	f.errors[field] = message
}

// ClearError снимает ошибку с поля
func (f *Form) ClearError(field string) {
	delete(f.errors, field)
}

// Errors возвращает карту ошибок полей
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// IsDirty — хотя бы одно поле отличается от загруженных значений
func (f *Form) IsDirty() bool {
	if len(f.values) != len(f.initial) {
		return true
	}
	for k, v := range f.values {
		if !reflect.DeepEqual(v, f.initial[k]) {
			return true
		}
	}
	return false
}

// IsValid — нет ошибок валидации
func (f *Form) IsValid() bool {
	return len(f.errors) == 0
}

// CanSubmit — отправка доступна только для измененной валидной формы
// и пока предыдущая отправка не завершилась
func (f *Form) CanSubmit() bool {
	return f.IsDirty() && f.IsValid() && !f.inFlight && !f.InputsDisabled()
}

// StartEditing переводит существующую запись в режим редактирования.
// Снимка значений не делается: закрытие без отправки не откатывает правки
func (f *Form) StartEditing() error {
	if f.mode != ModeViewLocked {
		return ErrNotLocked
	}
	f.mode = ModeEditUnlocked
	return nil
}

// BeginSubmit отмечает начало отправки и блокирует повторную
func (f *Form) BeginSubmit() error {
	if f.inFlight {
		return ErrSubmitInFlight
	}
	if !f.CanSubmit() {
		return ErrSubmitBlocked
	}
	f.inFlight = true
	return nil
}

// SubmitSucceeded завершает успешную отправку: текущие значения становятся
// исходными, существующая запись возвращается в режим просмотра
func (f *Form) SubmitSucceeded() error {
	if !f.inFlight {
		return ErrNoActiveSubmit
	}
	f.inFlight = false
	for k, v := range f.values {
		f.initial[k] = v
	}
	// после создания у записи появился id — дальше она ведет себя как существующая
	f.mode = ModeViewLocked
	return nil
}

// SubmitFailed завершает неудачную отправку: режим и введенные значения
// сохраняются, пользователь правит и отправляет повторно
func (f *Form) SubmitFailed() error {
	if !f.inFlight {
		return ErrNoActiveSubmit
	}
	f.inFlight = false
	return nil
}

// Changed возвращает имена полей, отличающихся от исходных значений
func (f *Form) Changed() []string {
	var fields []string
	for k, v := range f.values {
		if !reflect.DeepEqual(v, f.initial[k]) {
			fields = append(fields, k)
		}
	}
	return fields
}
