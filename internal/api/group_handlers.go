package api

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

type groupRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type memberResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type groupResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Currency  string           `json:"currency"`
	CreatedBy string           `json:"created_by"`
	CreatedAt int64            `json:"created_at"`
	Members   []memberResponse `json:"members,omitempty"`
}

func toGroupResponse(g *models.Group, members []*models.Member) groupResponse {
	resp := groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Currency:  g.Currency,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, memberResponse{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt})
	}
	return resp
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Currency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group, nil))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, members, err := s.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group, members))
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	group, err := s.groups.UpdateGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Name, req.Currency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group, nil))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Username == "" {
		badRequest(w, "username is required")
		return
	}

	member, added, err := s.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, memberResponse{UserID: member.UserID, Role: string(member.Role), JoinedAt: member.JoinedAt})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := s.groups.RemoveMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	category, err := s.groups.CreateCategory(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.groups.ListCategories(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := s.groups.DeleteCategory(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupID"), r.PathValue("categoryID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
