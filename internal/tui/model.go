// Package tui renders the catalog screen in a terminal with Bubble Tea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/domain/product"
	"github.com/xenking/product-drawer/internal/screen"
)

// Form input positions.
const (
	inputName = iota
	inputPrice
	inputOfferedPrice
	inputImage
	inputCount
)

// stateMsg carries a store update published by a subscription.
type stateMsg catalog.State

// doneMsg ends a screen flow started by a command.
type doneMsg struct{ err error }

// Model is the Bubble Tea model of the catalog screen.
type Model struct {
	ctx     context.Context
	store   *catalog.Store
	screen  *screen.Screen
	prompt  *prompter
	updates <-chan catalog.State
	lg      *zap.Logger

	products []product.Product
	loading  bool
	failed   bool
	cursor   int

	view    screen.View
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model

	alert   string
	confirm *pendingConfirm
	width   int
}

// New returns a Model over store that uploads images with u.
func New(ctx context.Context, store *catalog.Store, u *screen.Uploader, lg *zap.Logger) Model {
	if lg == nil {
		lg = zap.NewNop()
	}
	p := &prompter{}

	inputs := make([]textinput.Model, inputCount)
	for i, placeholder := range []string{"Name", "Price", "Offered Price", "Image path"} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "› "
		ti.CharLimit = 512
		inputs[i] = ti
	}

	return Model{
		ctx:     ctx,
		store:   store,
		screen:  screen.New(store, u, p, lg),
		prompt:  p,
		updates: subscribe(store),
		lg:      lg,
		inputs:  inputs,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// subscribe forwards store updates, keeping only the latest unread state.
func subscribe(store *catalog.Store) <-chan catalog.State {
	ch := make(chan catalog.State, 1)
	store.Subscribe(func(st catalog.State) {
		for {
			select {
			case ch <- st:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch
}

func (m Model) listen() tea.Msg {
	select {
	case st := <-m.updates:
		return stateMsg(st)
	case <-m.ctx.Done():
		return nil
	}
}

// Init loads the product list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.mount, m.listen, m.spinner.Tick)
}

func (m Model) mount() tea.Msg {
	return doneMsg{err: m.screen.Mount(m.ctx)}
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case stateMsg:
		m.applyState(catalog.State(msg))
		return m, m.listen
	case doneMsg:
		if msg.err != nil && !errors.Is(msg.err, screen.ErrImageRequired) {
			m.lg.Error("Flow failed", zap.Error(msg.err))
		}
		m.sync()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// sync pulls the screen, store and prompter state into the model.
func (m *Model) sync() {
	m.applyState(m.store.State())
	m.view = m.screen.View()
	if a := m.prompt.takeAlert(); a != "" {
		m.alert = a
	}
	if c := m.prompt.takeConfirm(); c != nil {
		m.confirm = c
	}
	if m.view.ModalVisible && !m.anyFocused() {
		m.focusInput(inputName)
	}
}

func (m *Model) applyState(st catalog.State) {
	m.products = st.Products
	m.loading = st.Loading
	m.failed = st.Err != nil
	if m.cursor >= len(m.products) {
		m.cursor = max(len(m.products)-1, 0)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case m.view.Uploading:
		return m, nil
	case m.alert != "":
		return m.handleAlertKeys(msg)
	case m.confirm != nil:
		return m.handleConfirmKeys(msg)
	case m.view.ModalVisible:
		return m.handleModalKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.alert = ""
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		onYes := m.confirm.onYes
		m.confirm = nil
		ctx := m.ctx
		return m, func() tea.Msg {
			onYes(ctx)
			return doneMsg{}
		}
	case "n", "N", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "r":
		return m, m.mount
	case "a":
		m.screen.OpenModal()
		m.resetInputs(screen.Form{})
		m.sync()
	case "e":
		if p, ok := m.selected(); ok {
			m.screen.SelectForEdit(p)
			m.sync()
			m.resetInputs(m.view.Draft.Form)
		}
	case "d":
		if p, ok := m.selected(); ok {
			m.screen.Delete(p.ID)
			m.sync()
		}
	}
	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen.Cancel()
		m.resetInputs(screen.Form{})
		m.sync()
		return m, nil
	case "tab", "down":
		m.focusInput((m.focus + 1) % inputCount)
		return m, nil
	case "shift+tab", "up":
		m.focusInput((m.focus + inputCount - 1) % inputCount)
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit hands the form to the screen. A missing image is rejected
// synchronously; everything else runs in a command while the spinner shows.
func (m Model) submit() (tea.Model, tea.Cmd) {
	form := m.form()
	m.screen.SetForm(form)
	if form.Image == nil {
		_ = m.screen.Submit(m.ctx)
		m.sync()
		return m, nil
	}

	m.view.Uploading = true
	scr, ctx := m.screen, m.ctx
	return m, func() tea.Msg {
		return doneMsg{err: scr.Submit(ctx)}
	}
}

func (m Model) form() screen.Form {
	f := screen.Form{
		Name:         m.inputs[inputName].Value(),
		Price:        m.inputs[inputPrice].Value(),
		OfferedPrice: m.inputs[inputOfferedPrice].Value(),
	}
	if path := m.inputs[inputImage].Value(); path != "" {
		f.Image = screen.LocalImage(path)
	}
	return f
}

func (m *Model) resetInputs(f screen.Form) {
	m.inputs[inputName].SetValue(f.Name)
	m.inputs[inputPrice].SetValue(f.Price)
	m.inputs[inputOfferedPrice].SetValue(f.OfferedPrice)
	m.inputs[inputImage].SetValue("")
	m.focusInput(inputName)
}

func (m *Model) focusInput(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m Model) anyFocused() bool {
	for _, in := range m.inputs {
		if in.Focused() {
			return true
		}
	}
	return false
}

func (m Model) selected() (product.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return product.Product{}, false
	}
	return m.products[m.cursor], true
}
