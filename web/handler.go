package web

import (
	"net/http"

	"github.com/xy-planning-network/waypoint/domain"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/http/template"
)

const (
	homeBody     = "Home Page"
	userIDPrefix = "User ID: "
)

// A Handler responds to the homepage routes.
// It holds no state mutated by requests.
type Handler struct {
	*resp.Responder

	tasks domain.TaskList
}

// NewHandler constructs a *Handler rendering the homepage for the Variant.
func NewHandler(d *resp.Responder, v domain.Variant) *Handler {
	return &Handler{Responder: d, tasks: v.Tasks()}
}

// Routes lists the routes h handles.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.Index},
		{Path: "/home", Method: http.MethodGet, Handler: h.Home},
		{Path: "/user/" + router.IntParam("id"), Method: http.MethodGet, Handler: h.User},
	}
}

// Index renders the homepage template, including the task list when there is one.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := make(map[string]any)
	if h.tasks != nil {
		data["tasks"] = h.tasks
	}

	if err := h.Html(w, r, resp.Tmpls(template.IndexTmpl), resp.Data(data)); err != nil {
		h.Err(w, r, err)
	}
}

// Home writes the literal "Home Page".
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if err := h.Text(w, r, resp.Data(homeBody)); err != nil {
		h.Err(w, r, err)
	}
}

// User writes "User ID: " followed by the id path variable as a decimal integer.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	id, err := router.IntVar(r, "id")
	if err != nil {
		h.Err(w, r, err, resp.Code(http.StatusNotFound))
		return
	}

	if err := h.Text(w, r, resp.Data(userIDPrefix+id.String())); err != nil {
		h.Err(w, r, err)
	}
}
