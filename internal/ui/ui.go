// package ui implements the interactive TUI: login, tayangan listing and
// favorites management over the authorized fetch client.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nobarhq/nobarctl/internal/api"
	"github.com/nobarhq/nobarctl/internal/auth"
	"github.com/nobarhq/nobarctl/internal/guard"
	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	// LoadingView renders while the session has not settled. No
	// navigation happens from here.
	LoadingView ViewState = iota
	LoginView
	TayanganView
	FavoritesView
)

// NavigateMsg asks the TUI to move to a path-addressed view. The route
// guard emits it through its Navigator when the session settles
// unauthenticated.
type NavigateMsg struct {
	Path string
}

type bootstrapDoneMsg struct {
	err error
}

type loginDoneMsg struct {
	message string
	err     error
}

type favoritesFetchedMsg struct {
	favorites []models.Favorite
	err       error
}

type favoriteDeletedMsg struct {
	favorites []models.Favorite
	message   string
	err       error
}

type tayanganFetchedMsg struct {
	title string
	items []models.Tayangan
	err   error
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	client     *api.Client
	controller *auth.Controller
	store      *session.Store
	webURL     string

	width  int
	height int

	username textinput.Model
	password textinput.Model
	loginErr string

	tayanganList list.Model
	searchInput  textinput.Model
	searching    bool

	favoritesList list.Model
	favorites     []models.Favorite

	status    string
	statusErr bool
	err       error
	help      help.Model
	keys      keyMap
}

// ModelOpts contains the dependencies for a TUI model.
type ModelOpts struct {
	Client     *api.Client
	Controller *auth.Controller
	Store      *session.Store
	WebURL     string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "Cari Judul Tayangan."

	h := help.New()
	h.Styles.ShortKey = styles.help
	h.Styles.ShortDesc = styles.help
	h.Styles.ShortSeparator = styles.help

	tayanganList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	tayanganList.Title = "Top 10 Tayangan"
	favoritesList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	favoritesList.Title = "Daftar Favorit"

	return &Model{
		ctx:         ctx,
		view:        LoadingView,
		client:      opts.Client,
		controller:  opts.Controller,
		store:       opts.Store,
		webURL:      opts.WebURL,
		username:    username,
		password:    password,
		searchInput: search,
		help:        h,
		keys:        newKeyMap(),

		tayanganList:  tayanganList,
		favoritesList: favoritesList,
	}
}

// Init bootstraps the session; the view stays on loading until it
// settles.
func (m *Model) Init() tea.Cmd {
	return m.bootstrap()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.tayanganList.Width() == 0 {
			m.tayanganList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.favoritesList.Width() == 0 {
			m.favoritesList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Path)

	case bootstrapDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		switch guard.Evaluate(m.store.Status()) {
		case guard.DecisionAllow:
			return m.navigate(guard.HomePath)
		default:
			return m.navigate(guard.LoginPath)
		}

	case loginDoneMsg:
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		m.loginErr = ""
		m.status = msg.message
		m.statusErr = false
		return m.navigate(guard.HomePath)

	case tayanganFetchedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		items := make([]list.Item, len(msg.items))
		for i, t := range msg.items {
			items[i] = tayanganItem{tayangan: t}
		}
		m.tayanganList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.tayanganList.Title = msg.title
		m.tayanganList.SetSize(m.width-4, m.height-8)
		return m, nil

	case favoritesFetchedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.setFavorites(msg.favorites)
		return m, nil

	case favoriteDeletedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.setFavorites(msg.favorites)
		m.status = msg.message
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case TayanganView:
			return m.handleTayanganKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return "Loading...\n"
	case LoginView:
		return m.renderLogin()
	case TayanganView:
		return m.renderTayangan()
	case FavoritesView:
		return m.renderFavorites()
	default:
		return ""
	}
}

// navigate is the single place path-addressed view changes happen.
func (m *Model) navigate(path string) (tea.Model, tea.Cmd) {
	switch path {
	case guard.LoginPath:
		m.view = LoginView
		m.password.SetValue("")
		m.username.Focus()
		m.password.Blur()
		return m, textinput.Blink
	case guard.HomePath:
		m.view = TayanganView
		return m, m.fetchTayangan("Top 10 Tayangan", m.client.TopTayangan)
	default:
		return m, nil
	}
}

func (m *Model) setFavorites(favorites []models.Favorite) {
	m.favorites = favorites
	items := make([]list.Item, len(favorites))
	for i, fav := range favorites {
		items[i] = favoriteItem{favorite: fav}
	}
	m.favoritesList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.favoritesList.Title = "Daftar Favorit"
	m.favoritesList.SetSize(m.width-4, m.height-8)
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Plain "q" must stay typeable in the form, so only ctrl+c quits here.
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab):
		if m.username.Focused() {
			m.username.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.username.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		creds := models.LoginRequest{
			Username: m.username.Value(),
			Password: m.password.Value(),
		}
		return m, m.login(creds)
	}

	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleTayanganKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.back):
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.enter):
			query := m.searchInput.Value()
			m.searching = false
			m.searchInput.Blur()
			if query == "" {
				return m, nil
			}
			return m, m.searchTayangan(query)
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.favorites):
		// Guard the protected view: never issue the favorites request for
		// an unauthenticated session.
		if guard.Evaluate(m.store.Status()) != guard.DecisionAllow {
			return m.navigate(guard.LoginPath)
		}
		m.view = FavoritesView
		return m, m.fetchFavorites()
	}

	var cmd tea.Cmd
	m.tayanganList, cmd = m.tayanganList.Update(msg)
	return m, cmd
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = TayanganView
		return m, nil
	case key.Matches(msg, m.keys.del):
		if item, ok := m.favoritesList.SelectedItem().(favoriteItem); ok {
			return m, m.deleteFavorite(item.favorite.Timestamp)
		}
	case key.Matches(msg, m.keys.open):
		if item, ok := m.favoritesList.SelectedItem().(favoriteItem); ok {
			path, err := item.favorite.DetailPath()
			if err != nil {
				m.status = err.Error()
				m.statusErr = true
				return m, nil
			}
			if err := shared.OpenBrowser(m.webURL + path); err != nil {
				m.status = err.Error()
				m.statusErr = true
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.favoritesList, cmd = m.favoritesList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case TayanganView:
		m.tayanganList, cmd = m.tayanganList.Update(msg)
	case FavoritesView:
		m.favoritesList, cmd = m.favoritesList.Update(msg)
	}
	return m, cmd
}

func (m *Model) bootstrap() tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: m.controller.Bootstrap(m.ctx)}
	}
}

func (m *Model) login(creds models.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		message, err := m.controller.Login(m.ctx, creds)
		return loginDoneMsg{message: message, err: err}
	}
}

func (m *Model) fetchTayangan(title string, fetch func(context.Context) ([]models.Tayangan, error)) tea.Cmd {
	return func() tea.Msg {
		items, err := fetch(m.ctx)
		return tayanganFetchedMsg{title: title, items: items, err: err}
	}
}

func (m *Model) searchTayangan(query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.SearchTayangan(m.ctx, query)
		return tayanganFetchedMsg{title: fmt.Sprintf("Hasil pencarian '%s'", query), items: items, err: err}
	}
}

func (m *Model) fetchFavorites() tea.Cmd {
	return func() tea.Msg {
		favorites, err := m.client.ListFavorites(m.ctx)
		return favoritesFetchedMsg{favorites: favorites, err: err}
	}
}

func (m *Model) deleteFavorite(timestamp string) tea.Cmd {
	return func() tea.Msg {
		favorites, message, err := m.client.DeleteFavorite(m.ctx, timestamp)
		return favoriteDeletedMsg{favorites: favorites, message: message, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Login")
	form := fmt.Sprintf("Username: %s\nPassword: %s", m.username.View(), m.password.View())

	var errLine string
	if m.loginErr != "" {
		errLine = "\n" + styles.err.Render(m.loginErr)
	}

	loginKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "login"))
	quitKey := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.tab, loginKey, quitKey})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, form, errLine, helpView)
}

func (m *Model) renderTayangan() string {
	var search string
	if m.searching {
		search = "\n" + m.searchInput.View()
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.favorites, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s%s\n\n%s", m.tayanganList.View(), search, m.renderStatus(), helpView)
}

func (m *Model) renderFavorites() string {
	helpKeys := []key.Binding{m.keys.del, m.keys.open, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", m.favoritesList.View(), m.renderStatus(), helpView)
}

// renderStatus styles the transient status line: green for backend
// confirmations, amber for non-fatal failures.
func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return "\n" + styles.warn.Render(m.status)
	}
	return "\n" + styles.ok.Render(m.status)
}
