package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormWithoutBackingID(t *testing.T) {
	f := New(map[string]interface{}{"name": ""}, false)

	assert.Equal(t, ModeCreateEditable, f.Mode())
	assert.False(t, f.InputsDisabled())
}

func TestNewFormWithBackingID(t *testing.T) {
	f := New(map[string]interface{}{"name": "ООО Ромашка"}, true)

	assert.Equal(t, ModeViewLocked, f.Mode())
	assert.True(t, f.InputsDisabled())
	assert.ErrorIs(t, f.Set("name", "x"), ErrInputsDisabled)

	require.NoError(t, f.StartEditing())
	assert.Equal(t, ModeEditUnlocked, f.Mode())
	assert.False(t, f.InputsDisabled())

	// повторный переход недоступен
	assert.ErrorIs(t, f.StartEditing(), ErrNotLocked)
}

func TestFormDirty(t *testing.T) {
	f := New(map[string]interface{}{"base_cost": 10000.0}, false)
	assert.False(t, f.IsDirty())

	require.NoError(t, f.Set("base_cost", 12000.0))
	assert.True(t, f.IsDirty())
	assert.Equal(t, []string{"base_cost"}, f.Changed())

	// возврат к исходному значению снова делает форму чистой
	require.NoError(t, f.Set("base_cost", 10000.0))
	assert.False(t, f.IsDirty())
}

func TestFormSubmitGating(t *testing.T) {
	f := New(map[string]interface{}{"name": ""}, false)

	// чистая форма не отправляется
	assert.False(t, f.CanSubmit())
	assert.ErrorIs(t, f.BeginSubmit(), ErrSubmitBlocked)

	require.NoError(t, f.Set("name", "ООО Ромашка"))
	f.SetError("name", "обязательное поле")
	assert.False(t, f.CanSubmit())

	f.ClearError("name")
	assert.True(t, f.CanSubmit())

	require.NoError(t, f.BeginSubmit())
	// повторная отправка во время активной невозможна
	assert.ErrorIs(t, f.BeginSubmit(), ErrSubmitInFlight)
	assert.False(t, f.CanSubmit())
}

func TestFormSubmitSucceeded(t *testing.T) {
	f := New(map[string]interface{}{"name": "старое"}, true)
	require.NoError(t, f.StartEditing())
	require.NoError(t, f.Set("name", "новое"))
	require.NoError(t, f.BeginSubmit())

	require.NoError(t, f.SubmitSucceeded())
	// после успешного обновления форма возвращается в просмотр и становится чистой
	assert.Equal(t, ModeViewLocked, f.Mode())
	assert.False(t, f.IsDirty())
	assert.Equal(t, "новое", f.Get("name"))
}

func TestFormSubmitFailed(t *testing.T) {
	f := New(map[string]interface{}{"name": "старое"}, true)
	require.NoError(t, f.StartEditing())
	require.NoError(t, f.Set("name", "новое"))
	require.NoError(t, f.BeginSubmit())

	require.NoError(t, f.SubmitFailed())
	// режим и правки сохраняются, можно исправить и отправить снова
	assert.Equal(t, ModeEditUnlocked, f.Mode())
	assert.True(t, f.IsDirty())
	assert.True(t, f.CanSubmit())
}

func TestFormSubmitLifecycleErrors(t *testing.T) {
	f := New(nil, false)
	assert.ErrorIs(t, f.SubmitSucceeded(), ErrNoActiveSubmit)
	assert.ErrorIs(t, f.SubmitFailed(), ErrNoActiveSubmit)
}
