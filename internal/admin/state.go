package admin

import (
	"slices"

	"github.com/Lelo88/monument-catalog/internal/products"
)

// State es el estado completo de la pantalla de administración.
// Las transiciones son funciones puras: devuelven un State nuevo.
type State struct {
	Records    []products.Product
	Busy       bool
	Editing    *products.Product // nil: modo alta
	Form       Form
	DialogOpen bool
}

// InitialState es la pantalla recién montada, antes de cargar.
func InitialState() State {
	return State{Records: []products.Product{}, Form: DefaultForm()}
}

// OpenCreate abre el diálogo vacío.
func (state State) OpenCreate() State {
	state.Editing = nil
	state.Form = DefaultForm()
	state.DialogOpen = true
	return state
}

// OpenEdit abre el diálogo con los datos de record.
func (state State) OpenEdit(record products.Product) State {
	state.Editing = &record
	state.Form = FormFrom(record)
	state.DialogOpen = true
	return state
}

// WithForm reemplaza lo que hay en el formulario.
func (state State) WithForm(form Form) State {
	state.Form = form
	return state
}

// Cancel descarta el formulario y cierra el diálogo.
func (state State) Cancel() State {
	state.Editing = nil
	state.Form = DefaultForm()
	state.DialogOpen = false
	return state
}

// Submitted es Cancel después de un guardado exitoso.
func (state State) Submitted() State {
	return state.Cancel()
}

// Loaded reemplaza la lista entera. Nunca se parchea en el lugar.
func (state State) Loaded(records []products.Product) State {
	if records == nil {
		records = []products.Product{}
	}
	state.Records = records
	return state
}

// WithBusy marca o libera la pantalla.
func (state State) WithBusy(busy bool) State {
	state.Busy = busy
	return state
}

// Clone copia la lista y el registro en edición para que quien lo reciba
// no comparta memoria con el controller.
func (state State) Clone() State {
	state.Records = slices.Clone(state.Records)
	if state.Records == nil {
		state.Records = []products.Product{}
	}
	if state.Editing != nil {
		editing := *state.Editing
		state.Editing = &editing
	}
	return state
}
