package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"invtrack/internal/config"
	"invtrack/internal/domain"
	"invtrack/internal/eventbus"
	"invtrack/internal/inventory"
	"invtrack/internal/store"
	"invtrack/internal/ui/input"
	inputtypes "invtrack/internal/ui/input/types"
	"invtrack/internal/ui/logic"
	"invtrack/internal/ui/views"
)

// ReadyMarker is written once the first frame is drawn when a ready writer is set
const ReadyMarker = "__READY__"

// Model represents the UI state
type Model struct {
	ctx     context.Context
	bus     eventbus.EventBus
	config  *config.Config
	store   store.Store
	session *inventory.Session

	// UI-specific state not in the session
	width            int
	height           int
	help             help.Model
	keys             keyMap
	formKeys         formKeyMap
	spinner          spinner.Model
	showHelp         bool
	helpScrollOffset int
	showInfo         bool
	notice           string // blocking message, dismissed by any key
	inPagerMode      bool   // tracks if we're currently in pager mode
	ready            bool
	readyOut         io.Writer

	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, s store.Store) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:          ctx,
		bus:          bus,
		config:       cfg,
		store:        s,
		session:      inventory.NewSession(),
		help:         help.New(),
		keys:         newKeyMap(),
		formKeys:     newFormKeyMap(),
		spinner:      sp,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UISettings.Currency, cfg.UISettings.ShowDescription),
		inputHandler: input.New(),
		helpOps:      NewHelpOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// SetReadyWriter makes the model write ReadyMarker to w after the first frame
func (m *Model) SetReadyWriter(w io.Writer) {
	m.readyOut = w
}

// Session returns the state the model renders
func (m *Model) Session() *inventory.Session {
	return m.session
}

// Init starts the initial load
func (m *Model) Init() tea.Cmd {
	return m.requestLoad()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 4
		m.updateViewportHeight()
		if !m.ready {
			m.ready = true
			return m, m.signalReady()
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.notice != "" {
		m.notice = ""
		return nil
	}

	if m.showInfo {
		switch msg.String() {
		case "esc", "i", "q", "enter":
			m.showInfo = false
			return nil
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
			m.helpScrollOffset = 0
		case "ctrl+c":
			return tea.Quit
		case "up", "k":
			if m.helpScrollOffset > 0 {
				m.helpScrollOffset--
			}
		case "down", "j":
			m.helpScrollOffset++
		}
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}

	m.updateViewportHeight()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		Session:   m.session,
		Navigator: m.navigator,
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Debugf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Move(a.Direction)

	case inputtypes.UpdateTextAction:
		m.setSearchTerm(a.Text)

	case inputtypes.SubmitTextAction:
		m.setSearchTerm(a.Text)

	case inputtypes.ClearFilterAction:
		m.setSearchTerm("")

	case inputtypes.UpdateDraftAction:
		m.session.SetDraft(a.Draft)

	case inputtypes.SubmitFormAction:
		return m.submitForm(a.Draft)

	case inputtypes.CloseFormAction:
		log.Debug("Create form closed, draft kept")

	case inputtypes.DeleteProductAction:
		if a.ID == "" {
			return nil
		}
		log.WithField("id", a.ID).Info("Delete confirmed")
		return m.deleteCmd(a.ID)

	case inputtypes.DeclineDeleteAction:
		log.WithField("id", a.ID).Debug("Delete declined")
		m.publish(domain.DeleteDeclinedEvent{ID: a.ID})

	case inputtypes.ReloadAction:
		return m.requestLoad()

	case inputtypes.ToggleInfoAction:
		m.showInfo = !m.showInfo

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScrollOffset = 0

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			m.showHelp = true
			return nil
		}
		return m.fetchHelpPager(helpPagerContent())

	case inputtypes.QuitAction:
		log.WithField("force", a.Force).Info("Quit requested")
		return tea.Quit
	}

	return nil
}

// submitForm validates the draft and sends it, keeping the form open on a validation error
func (m *Model) submitForm(draft domain.ProductDraft) tea.Cmd {
	m.session.SetDraft(draft)
	np, err := m.session.PrepareCreate(m.config.Validation.Strict)
	if err != nil {
		var ve *inventory.ValidationError
		if errors.As(err, &ve) {
			m.notice = ve.Message
			m.inputHandler.Form().FocusField(ve.Field)
			m.publish(domain.ValidationFailedEvent{Field: ve.Field, Message: ve.Message})
		} else {
			m.notice = err.Error()
		}
		return nil
	}

	m.inputHandler.ChangeMode(inputtypes.ModeNormal, m.inputContext())
	return m.createCmd(np)
}

func (m *Model) setSearchTerm(term string) {
	m.session.SetSearchTerm(term)
	m.navigator.UpdateState(len(m.session.View), m.navigator.ViewportHeight())
}

// requestLoad starts a list fetch, or queues one if a fetch is outstanding
func (m *Model) requestLoad() tea.Cmd {
	if !m.session.StartLoad() {
		log.Debug("Reload queued behind the fetch in flight")
		return nil
	}
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m *Model) loadCmd() tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		products, err := s.List(ctx)
		return productsLoadedMsg{products: products, err: err}
	}
}

func (m *Model) createCmd(np domain.NewProduct) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		_, err := s.Create(ctx, np)
		return productCreatedMsg{product: np, err: err}
	}
}

func (m *Model) deleteCmd(id domain.ProductID) tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		return productDeletedMsg{id: id, err: s.Delete(ctx, id)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) signalReady() tea.Cmd {
	if m.readyOut == nil {
		return nil
	}
	w := m.readyOut
	return func() tea.Msg {
		fmt.Fprintln(w, ReadyMarker)
		return readyMsg{}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		again := m.session.FinishLoad(msg.products, msg.err)
		if msg.err != nil {
			log.WithError(msg.err).Warn("Failed to load products")
			m.publish(domain.CollectionLoadFailedEvent{Err: msg.err})
		} else {
			log.WithField("count", len(msg.products)).Debug("Products loaded")
			m.publish(domain.CollectionLoadedEvent{Count: len(m.session.Collection)})
		}
		m.navigator.UpdateState(len(m.session.View), m.navigator.ViewportHeight())
		if again {
			return m, m.loadCmd()
		}
		return m, nil

	case productCreatedMsg:
		if !m.session.FinishCreate(msg.err) {
			log.WithError(msg.err).WithField("name", msg.product.Name).Warn("Failed to create product")
			m.publish(domain.ProductCreateFailedEvent{Product: msg.product, Err: msg.err})
			return m, nil
		}
		log.WithField("name", msg.product.Name).Info("Product created")
		m.inputHandler.Form().Reset()
		m.publish(domain.ProductCreatedEvent{Product: msg.product})
		return m, m.requestLoad()

	case productDeletedMsg:
		if !m.session.FinishDelete(msg.err) {
			log.WithError(msg.err).WithField("id", msg.id).Warn("Failed to delete product")
			m.publish(domain.ProductDeleteFailedEvent{ID: msg.id, Err: msg.err})
			return m, nil
		}
		log.WithField("id", msg.id).Info("Product deleted")
		m.publish(domain.ProductDeletedEvent{ID: msg.id})
		return m, m.requestLoad()

	case spinner.TickMsg:
		if !m.session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("Help pager failed, showing popup")
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		return m, nil
	}
}

// updateViewportHeight calculates the available height for the product rows
func (m *Model) updateViewportHeight() {
	// padding (2), title (2), count (1), column header (1), error (1), footer (2)
	reservedLines := 9
	reservedLines += views.InputLines(m.inputMode(), len(m.inputHandler.Form().Fields()))

	height := m.height - reservedLines
	if height < 1 {
		height = 1
	}
	m.navigator.UpdateState(len(m.session.View), height)
}

func (m *Model) inputMode() string {
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeFilter:
		return "filter"
	case inputtypes.ModeForm:
		return "form"
	case inputtypes.ModeDeleteConfirm:
		return "confirm"
	default:
		return ""
	}
}

func (m *Model) buildViewState() views.ViewState {
	start, end := m.navigator.VisibleRange()
	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Products:         m.session.View,
		SearchTerm:       m.session.SearchTerm,
		SelectedIndex:    m.navigator.SelectedIndex(),
		VisibleStart:     start,
		VisibleEnd:       end,
		Loading:          m.session.Loading,
		Spinner:          m.spinner.View(),
		InputMode:        m.inputMode(),
		Notice:           m.notice,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScrollOffset,
		HelpModel:        m.help,
		KeyMap:           m.keys,
	}
	if m.session.Err != nil {
		state.ErrorText = m.session.Err.Error()
	}

	switch state.InputMode {
	case "filter":
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.TextInput = m.inputHandler.FilterPrompt() + ti.View()
		}
	case "form":
		for _, f := range m.inputHandler.Form().Fields() {
			state.Form = append(state.Form, views.FormLine{Label: f.Label, Input: f.Input, Focused: f.Focused})
		}
		state.KeyMap = m.formKeys
	case "confirm":
		state.DeletePrompt = m.session.DeletePrompt(m.inputHandler.DeleteTarget())
	}

	if m.showInfo {
		if p, ok := m.currentProduct(); ok {
			state.ShowInfo = true
			state.InfoContent = m.buildProductInfo(p)
		}
	}
	return state
}

func (m *Model) currentProduct() (domain.Product, bool) {
	idx := m.navigator.SelectedIndex()
	if idx < 0 || idx >= len(m.session.View) {
		return domain.Product{}, false
	}
	return m.session.View[idx], true
}

// buildProductInfo renders the details popup. The first line is the product name.
func (m *Model) buildProductInfo(p domain.Product) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "ID:          %s\n", p.ID)
	description := p.Description
	if description == "" {
		description = "-"
	}
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Price:       %s\n", m.renderer.Products().FormatPrice(p))
	fmt.Fprintf(&b, "Quantity:    %d\n", p.Quantity)
	value := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
	fmt.Fprintf(&b, "Stock value: %s%s", m.config.UISettings.Currency, value.StringFixed(2))
	return b.String()
}

func (m *Model) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
