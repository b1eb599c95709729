package family

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"familytree/internal/domain/command"
	"familytree/internal/httpresponse"
	"familytree/internal/render"
	familyUC "familytree/internal/usecase/family"
	"familytree/internal/utils"
)

const defaultHistoryLimit = 50

type FamilyHandler struct {
	log      *zap.SugaredLogger
	familyUC *familyUC.FamilyUseCase
	hub      *Hub
}

type CommandRequest struct {
	Command string `json:"command"`
}

type TreeResponse struct {
	Size int          `json:"size"`
	Tree *render.View `json:"tree"`
}

type NamesResponse struct {
	Name  string   `json:"name"`
	Names []string `json:"names"`
}

func NewFamilyHandler(log *zap.SugaredLogger, uc *familyUC.FamilyUseCase) *FamilyHandler {
	hub := NewHub(log, uc.WithSnapshot)
	uc.Subscribe(hub)
	return &FamilyHandler{
		log:      log,
		familyUC: uc,
		hub:      hub,
	}
}

func (h *FamilyHandler) Routes(r chi.Router) {
	r.Post("/command", h.HandleCommand)
	r.Get("/tree", h.HandleTree)
	r.Get("/ancestors/{name}", h.HandleAncestors)
	r.Get("/descendants/{name}", h.HandleDescendants)
	r.Get("/help", h.HandleHelp)
	r.Get("/history", h.HandleHistory)
	r.Get("/ws", h.hub.HandleWS)
}

// HandleCommand runs one text command. Commands that do not parse or have no
// effect still answer 200; the result tells what happened.
func (h *FamilyHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleCommand: malformed JSON: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	result := h.familyUC.Execute(r.Context(), req.Command)
	h.log.Infof("command %q applied=%t dropped=%t", req.Command, result.Applied, result.Dropped)

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

func (h *FamilyHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, TreeResponse{
		Size: h.familyUC.Size(),
		Tree: h.familyUC.Snapshot(),
	})
}

func (h *FamilyHandler) HandleAncestors(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, NamesResponse{
		Name:  name,
		Names: h.familyUC.Ancestors(r.Context(), name),
	})
}

func (h *FamilyHandler) HandleDescendants(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, NamesResponse{
		Name:  name,
		Names: h.familyUC.Descendants(r.Context(), name),
	})
}

func (h *FamilyHandler) HandleHelp(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, command.Help())
}

func (h *FamilyHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.log.Warnf("HandleHistory: bad limit %q", raw)
			httpresponse.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := h.familyUC.History(r.Context(), limit)
	if err != nil {
		h.log.Error("HandleHistory: ", err)
		httpresponse.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, history)
}
