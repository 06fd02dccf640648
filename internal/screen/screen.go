// Package screen implements the catalog's single screen: the form draft, the
// modal and edit flags, and the add, edit and delete flows that upload an
// image, write the record and reload the list.
//
// Failures inside a flow are logged and swallowed. Whatever happened, a
// submitted flow closes the modal, clears the draft and reloads the list.
package screen

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/domain/product"
)

// Dialog titles shown through the Prompter.
const (
	ImageRequiredTitle = "Please Select Image"
	DeleteConfirmTitle = "Are You Sure You Want to Delete?"
)

// ErrImageRequired is returned by Add and Edit when no image is selected.
var ErrImageRequired = errors.New("image required")

// Dispatcher sends actions to the catalog store.
type Dispatcher interface {
	Dispatch(ctx context.Context, a catalog.Action) error
}

// Prompter shows blocking dialogs.
type Prompter interface {
	// Alert shows a message the user has to dismiss.
	Alert(title string)
	// Confirm asks a yes/no question and calls onYes only for "yes".
	Confirm(title string, onYes func(ctx context.Context))
}

// Form holds the values the modal collects.
type Form struct {
	Name         string
	Price        string
	OfferedPrice string
	Image        ImageFile
}

// Draft is the form state of the record being created or edited.
type Draft struct {
	Form
	// ID is the record being edited; empty when adding.
	ID string
	// ImageURL is the current image of the record being edited.
	ImageURL string
}

// View is a snapshot of the screen state.
type View struct {
	Draft        Draft
	ModalVisible bool
	Editing      bool
	Uploading    bool
}

// Screen is the controller behind the catalog screen.
type Screen struct {
	dispatch Dispatcher
	uploader *Uploader
	prompt   Prompter
	lg       *zap.Logger

	mu           sync.Mutex
	draft        Draft
	modalVisible bool
	editing      bool
	uploading    bool
}

// New returns a Screen with an empty draft and the modal closed.
func New(d Dispatcher, u *Uploader, p Prompter, lg *zap.Logger) *Screen {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Screen{
		dispatch: d,
		uploader: u,
		prompt:   p,
		lg:       lg,
	}
}

// View returns the current screen state.
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Draft:        s.draft,
		ModalVisible: s.modalVisible,
		Editing:      s.editing,
		Uploading:    s.uploading,
	}
}

// Mount loads the product list and returns the error of that load.
func (s *Screen) Mount(ctx context.Context) error {
	return s.refresh(ctx)
}

// OpenModal shows the form for a new product.
func (s *Screen) OpenModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalVisible = true
}

// CloseModal hides the form and leaves the draft untouched.
func (s *Screen) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalVisible = false
}

// Cancel hides the form and discards the draft.
func (s *Screen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalVisible = false
	s.editing = false
	s.draft = Draft{}
}

// SetForm replaces the form values of the draft.
func (s *Screen) SetForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Form = f
}

// SelectForEdit copies p into the draft and opens the form in edit mode.
// The image has to be picked again before submitting.
func (s *Screen) SelectForEdit(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = true
	s.modalVisible = true
	s.draft = Draft{
		Form: Form{
			Name:         p.Name,
			Price:        p.Price,
			OfferedPrice: p.OfferedPrice,
		},
		ID:       p.ID,
		ImageURL: p.ImageURL,
	}
}

// Submit runs Edit for the draft's record when editing, Add otherwise.
func (s *Screen) Submit(ctx context.Context) error {
	s.mu.Lock()
	draft, editing := s.draft, s.editing
	s.mu.Unlock()

	if editing {
		return s.Edit(ctx, draft.ID, draft.Form)
	}
	return s.Add(ctx, draft.Form)
}

// Add uploads the image and creates a product from f. It returns
// ErrImageRequired, after alerting, when f has no image; any other failure
// is logged and the list is reloaded regardless.
func (s *Screen) Add(ctx context.Context, f Form) error {
	s.mu.Lock()
	s.editing = false
	s.mu.Unlock()

	if f.Image == nil {
		s.prompt.Alert(ImageRequiredTitle)
		return ErrImageRequired
	}

	s.setUploading(true)
	if err := s.save(ctx, f, func(p product.Product) catalog.Action {
		return catalog.AddProduct{Product: p}
	}); err != nil {
		s.lg.Error("Add product failed", zap.Error(err))
	}
	s.finish(ctx)
	return nil
}

// Edit uploads the image and overwrites the product id with f. Errors are
// handled as in Add.
func (s *Screen) Edit(ctx context.Context, id string, f Form) error {
	if f.Image == nil {
		s.prompt.Alert(ImageRequiredTitle)
		return ErrImageRequired
	}

	s.setUploading(true)
	if err := s.save(ctx, f, func(p product.Product) catalog.Action {
		p.ID = id
		return catalog.EditProduct{Product: p}
	}); err != nil {
		s.lg.Error("Edit product failed", zap.String("id", id), zap.Error(err))
	}
	s.finish(ctx)
	return nil
}

// Delete asks for confirmation and, on "yes", deletes the product and
// reloads the list.
func (s *Screen) Delete(id string) {
	s.prompt.Confirm(DeleteConfirmTitle, func(ctx context.Context) {
		if err := s.dispatch.Dispatch(ctx, catalog.DeleteProduct{ID: id}); err != nil {
			s.lg.Error("Delete product failed", zap.String("id", id), zap.Error(err))
		}
		_ = s.refresh(ctx)
	})
}

func (s *Screen) save(ctx context.Context, f Form, action func(product.Product) catalog.Action) error {
	p := f.product()

	url, err := s.uploader.Upload(ctx, f.Image)
	if err != nil {
		return errors.Wrap(err, "upload image")
	}
	s.lg.Debug("Image uploaded", zap.String("url", url))
	p.ImageURL = url

	return s.dispatch.Dispatch(ctx, action(p))
}

func (s *Screen) finish(ctx context.Context) {
	s.mu.Lock()
	s.uploading = false
	s.modalVisible = false
	s.editing = false
	s.draft = Draft{}
	s.mu.Unlock()

	_ = s.refresh(ctx)
}

func (s *Screen) refresh(ctx context.Context) error {
	err := s.dispatch.Dispatch(ctx, catalog.FetchProducts{})
	if err != nil {
		s.lg.Error("Fetch products failed", zap.Error(err))
	}
	return err
}

func (s *Screen) setUploading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploading = v
}

func (f Form) product() product.Product {
	return product.Product{
		Name:         f.Name,
		Price:        f.Price,
		OfferedPrice: f.OfferedPrice,
	}
}
