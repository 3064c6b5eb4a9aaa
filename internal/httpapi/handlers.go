package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/go-chi/chi/v5"
)

const defaultRecommendationLimit = 10

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "SESSION_EXPIRED", "missing actor identity")
		return 0, false
	}
	return id, true
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	kind, err := request.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "unknown engagement kind")
		return
	}

	limit := defaultRecommendationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	ranked, err := s.engagement.ListRankedCandidates(r.Context(), actor, kind, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

type createRequestBody struct {
	Kind       string `json:"type"`
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
}

type requestWithView struct {
	Request *request.Request `json:"request"`
	View    *engagement.View `json:"view"`
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}

	kind, err := request.ParseKind(body.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "unknown engagement kind")
		return
	}

	created, view, err := s.engagement.SendEngagementRequest(r.Context(), actor, kind, body.ReceiverID, body.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, requestWithView{Request: created, View: view})
}

func (s *Server) handleListSent(w http.ResponseWriter, r *http.Request) {
	s.handleRequestList(w, r, func(view *engagement.View) []request.Request {
		return view.SentRequests
	})
}

func (s *Server) handleListReceived(w http.ResponseWriter, r *http.Request) {
	s.handleRequestList(w, r, func(view *engagement.View) []request.Request {
		return view.ReceivedRequests
	})
}

func (s *Server) handleRequestList(w http.ResponseWriter, r *http.Request, pick func(*engagement.View) []request.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	view, err := s.engagement.Overview(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	reqs := pick(view)
	if reqs == nil {
		reqs = []request.Request{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, engagement.DecisionAccept)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.handleDecision(w, r, engagement.DecisionReject)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request, decision engagement.Decision) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	updated, view, err := s.engagement.RespondToRequest(r.Context(), actor, chi.URLParam(r, "id"), decision)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestWithView{Request: updated, View: view})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	view, err := s.engagement.Overview(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleListMentors(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipList(w, r, "mentors")
}

func (s *Server) handleListMentees(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipList(w, r, "mentees")
}

func (s *Server) handleListSwapPartners(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipList(w, r, "swap-partners")
}

func (s *Server) handleRelationshipList(w http.ResponseWriter, r *http.Request, role string) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	view, err := s.engagement.Overview(r.Context(), actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch role {
	case "mentors":
		writeJSON(w, http.StatusOK, view.Mentors)
	case "mentees":
		writeJSON(w, http.StatusOK, view.Mentees)
	default:
		writeJSON(w, http.StatusOK, view.SwapPartners)
	}
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipMutation(w, r, s.engagement.BlockRelationship)
}

func (s *Server) handleUnblock(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipMutation(w, r, s.engagement.UnblockRelationship)
}

func (s *Server) handleRemoveRelationship(w http.ResponseWriter, r *http.Request) {
	s.handleRelationshipMutation(w, r, s.engagement.RemoveRelationship)
}

func (s *Server) handleRelationshipMutation(w http.ResponseWriter, r *http.Request, mutate func(ctx context.Context, actorID int64, relationshipID string) (*engagement.View, error)) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	view, err := mutate(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
