package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Lelo88/monument-catalog/internal/catalog"
	"github.com/Lelo88/monument-catalog/internal/products"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrBusy: ya hay una operación en curso.
	ErrBusy = errors.New("another operation is in progress")
	// ErrInvalidForm: faltan campos obligatorios; no se llamó a la API.
	ErrInvalidForm = errors.New("required fields are missing")
	// ErrDeclined: el usuario no confirmó el borrado.
	ErrDeclined = errors.New("deletion not confirmed")
)

// DefaultOperationTimeout acota cada llamada a la API.
const DefaultOperationTimeout = 30 * time.Second

// Catalog es lo que el controller necesita del cliente de la API.
type Catalog interface {
	List(ctx context.Context) ([]products.Product, error)
	Create(ctx context.Context, fields products.Fields) (catalog.Result, error)
	Update(ctx context.Context, id int64, fields products.Fields) (catalog.Result, error)
	Delete(ctx context.Context, id int64) (catalog.Result, error)
	BulkImport(ctx context.Context, workbook []byte) (catalog.Result, error)
}

// Option configura el controller.
type Option func(*Controller)

// WithTimeout cambia el límite por llamada. 0 lo desactiva.
func WithTimeout(timeout time.Duration) Option {
	return func(controller *Controller) {
		controller.timeout = timeout
	}
}

// WithLogger agrega logs de las fallas.
func WithLogger(logger *zap.Logger) Option {
	return func(controller *Controller) {
		controller.logger = logger
	}
}

// Controller es dueño del estado de la pantalla y secuencia las llamadas
// a la API. Una sola operación a la vez: el semáforo es el flag Busy.
type Controller struct {
	catalog   Catalog
	notifier  Notifier
	confirmer Confirmer
	timeout   time.Duration
	logger    *zap.Logger

	gate *semaphore.Weighted

	mu    sync.Mutex
	state State
}

// New crea el controller con el estado inicial (lista vacía, modo alta).
func New(client Catalog, notifier Notifier, confirmer Confirmer, options ...Option) *Controller {
	controller := &Controller{
		catalog:   client,
		notifier:  notifier,
		confirmer: confirmer,
		timeout:   DefaultOperationTimeout,
		logger:    zap.NewNop(),
		gate:      semaphore.NewWeighted(1),
		state:     InitialState(),
	}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// State devuelve una copia del estado actual.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state.Clone()
}

// Mount carga la lista. Si falla, la lista queda vacía y se avisa.
func (controller *Controller) Mount(ctx context.Context) error {
	release, err := controller.acquire()
	if err != nil {
		return err
	}
	defer release()

	controller.markBusy()
	return controller.reload(ctx)
}

// OpenCreate abre el diálogo en modo alta.
func (controller *Controller) OpenCreate() error {
	return controller.apply(State.OpenCreate)
}

// OpenEdit abre el diálogo para editar record.
func (controller *Controller) OpenEdit(record products.Product) error {
	return controller.apply(func(state State) State {
		return state.OpenEdit(record)
	})
}

// SetForm reemplaza el contenido del formulario.
func (controller *Controller) SetForm(form Form) error {
	return controller.apply(func(state State) State {
		return state.WithForm(form)
	})
}

// Cancel descarta el formulario sin llamar a la API.
func (controller *Controller) Cancel() error {
	return controller.apply(State.Cancel)
}

// Submit crea o actualiza según el modo. En éxito recarga la lista y
// cierra el diálogo; en falla deja el formulario intacto.
func (controller *Controller) Submit(ctx context.Context) error {
	release, err := controller.acquire()
	if err != nil {
		return err
	}
	defer release()

	snapshot := controller.State()
	if err := snapshot.Form.Validate(); err != nil {
		controller.notify(failure(textRequiredField))
		return err
	}

	controller.markBusy()
	fields := snapshot.Form.Fields()
	message := textCreated
	err = controller.call(ctx, func(ctx context.Context) error {
		if snapshot.Editing != nil {
			message = textUpdated
			_, err := controller.catalog.Update(ctx, snapshot.Editing.ID, fields)
			return err
		}
		_, err := controller.catalog.Create(ctx, fields)
		return err
	})
	if err != nil {
		controller.logger.Warn("save product failed", zap.Error(err))
		controller.notify(failure(catalog.UserMessage(err, textSaveFailed)))
		return err
	}

	controller.notify(success(message))
	controller.refresh(ctx)
	controller.update(State.Submitted)
	return nil
}

// Delete pide confirmación y borra. Si el usuario no confirma no pasa nada.
func (controller *Controller) Delete(ctx context.Context, id int64) error {
	release, err := controller.acquire()
	if err != nil {
		return err
	}
	defer release()

	if controller.confirmer == nil || !controller.confirmer.Confirm(DeletePrompt) {
		return ErrDeclined
	}

	controller.markBusy()
	err = controller.call(ctx, func(ctx context.Context) error {
		_, err := controller.catalog.Delete(ctx, id)
		return err
	})
	if err != nil {
		// Siempre el texto genérico, aunque el servidor explique.
		controller.logger.Warn("delete product failed", zap.Int64("id", id), zap.Error(err))
		controller.notify(failure(textDeleteFailed))
		return err
	}

	controller.notify(success(textDeleted))
	controller.refresh(ctx)
	return nil
}

// BulkImport lee el archivo entero y lo manda como Excel.
func (controller *Controller) BulkImport(ctx context.Context, file io.Reader) error {
	release, err := controller.acquire()
	if err != nil {
		return err
	}
	defer release()

	controller.markBusy()
	workbook, err := io.ReadAll(file)
	if err != nil {
		controller.notify(failure(textImportFailed))
		return fmt.Errorf("read workbook: %w", err)
	}

	var result catalog.Result
	err = controller.call(ctx, func(ctx context.Context) error {
		var err error
		result, err = controller.catalog.BulkImport(ctx, workbook)
		return err
	})
	if err != nil {
		controller.logger.Warn("bulk import failed", zap.Error(err))
		controller.notify(failure(catalog.UserMessage(err, textImportFailed)))
		return err
	}

	controller.notify(success(result.Message))
	controller.refresh(ctx)
	return nil
}

// refresh recarga después de una mutación que ya se guardó. Si la recarga
// falla, reload ya avisó; la operación igual cuenta como exitosa.
func (controller *Controller) refresh(ctx context.Context) {
	_ = controller.reload(ctx)
}

// reload es Mount sin tomar el semáforo: lo usan las operaciones que ya lo tienen.
func (controller *Controller) reload(ctx context.Context) error {
	var records []products.Product
	err := controller.call(ctx, func(ctx context.Context) error {
		var err error
		records, err = controller.catalog.List(ctx)
		return err
	})
	if err != nil {
		records = nil
		controller.logger.Warn("list products failed", zap.Error(err))
		controller.notify(failure(textLoadFailed))
	}

	controller.update(func(state State) State {
		return state.Loaded(records)
	})
	return err
}

// acquire toma el semáforo sin esperar. release libera Busy y el semáforo.
func (controller *Controller) acquire() (func(), error) {
	if !controller.gate.TryAcquire(1) {
		return nil, ErrBusy
	}

	return func() {
		controller.update(func(state State) State {
			return state.WithBusy(false)
		})
		controller.gate.Release(1)
	}, nil
}

func (controller *Controller) markBusy() {
	controller.update(func(state State) State {
		return state.WithBusy(true)
	})
}

// call corre fn con el timeout por operación.
func (controller *Controller) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if controller.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, controller.timeout)
	defer cancel()
	return fn(ctx)
}

// apply aplica una transición local; no se permite mientras hay algo en curso.
func (controller *Controller) apply(transition func(State) State) error {
	if !controller.gate.TryAcquire(1) {
		return ErrBusy
	}
	defer controller.gate.Release(1)

	controller.update(transition)
	return nil
}

func (controller *Controller) update(transition func(State) State) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.state = transition(controller.state)
}

func (controller *Controller) notify(notification Notification) {
	if controller.notifier != nil {
		controller.notifier.Notify(notification)
	}
}
