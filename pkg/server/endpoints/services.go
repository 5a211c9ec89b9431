package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openagri/aegis/pkg/model"
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/middleware"
	"github.com/openagri/aegis/pkg/server/store"
)

// CreateServiceRequest is the payload for POST /services
type CreateServiceRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePermissionRequest is the payload for POST /permissions
type CreatePermissionRequest struct {
	ServiceCode string `json:"service_code"`
	Action      string `json:"action"`
	IsVirtual   bool   `json:"is_virtual"`
}

// UserGrantRequest is the payload for POST /grants/user
type UserGrantRequest struct {
	UserID       uint `json:"user_id"`
	PermissionID uint `json:"permission_id"`
}

// GroupGrantRequest is the payload for POST /grants/group
type GroupGrantRequest struct {
	GroupID       uint   `json:"group_id"`
	PermissionIDs []uint `json:"permission_ids"`
}

// GroupServiceGrantRequest is the payload for POST /grants/group-service
type GroupServiceGrantRequest struct {
	GroupID   uint `json:"group_id"`
	ServiceID uint `json:"service_id"`
}

// RegisterRegistryEndpoints registers the admin registry endpoints: service
// lifecycle, permission creation and grant management. All of them sit
// behind bearer authentication.
func RegisterRegistryEndpoints(s *server.Server) {
	authn := middleware.NewTokenAuthenticator(s.Validator)

	r := s.Router.PathPrefix("/services").Subrouter()
	r.Use(authn.Middleware)
	r.HandleFunc("", handleCreateService(s)).Methods("POST")
	r.HandleFunc("", handleListServices(s)).Methods("GET")
	r.HandleFunc("/{code}", handleDeleteService(s)).Methods("DELETE")
	r.HandleFunc("/{code}/restore", handleRestoreService(s)).Methods("POST")

	p := s.Router.PathPrefix("/permissions").Subrouter()
	p.Use(authn.Middleware)
	p.HandleFunc("", handleCreatePermission(s)).Methods("POST")

	g := s.Router.PathPrefix("/grants").Subrouter()
	g.Use(authn.Middleware)
	g.HandleFunc("/user", handleGrantUser(s)).Methods("POST")
	g.HandleFunc("/user", handleRevokeUser(s)).Methods("DELETE")
	g.HandleFunc("/group", handleSetGroupPermissions(s)).Methods("POST")
	g.HandleFunc("/group-service", handleGrantGroupService(s)).Methods("POST")
	g.HandleFunc("/group-service", handleRevokeGroupService(s)).Methods("DELETE")
}

func handleCreateService(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.Name == "" {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "code and name are required"})
			return
		}
		defer r.Body.Close()

		svc := &model.Service{
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
		}
		if err := s.Registry.CreateService(svc); err != nil {
			if errors.Is(err, store.ErrConflict) {
				respondWithJSON(w, http.StatusConflict, map[string]string{"detail": "service code or name already in use"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		respondWithJSON(w, http.StatusCreated, svc)
	}
}

func handleListServices(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := s.Registry.ListServices()
		if err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		respondWithJSON(w, http.StatusOK, services)
	}
}

func handleDeleteService(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		if err := s.Registry.SoftDeleteService(code); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "service not found"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRestoreService(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		if err := s.Registry.RestoreService(code); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "service not found"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCreatePermission(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePermissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Action == "" {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "action is required"})
			return
		}
		defer r.Body.Close()

		action, err := model.ActionString(req.Action)
		if err != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "unknown action"})
			return
		}

		perm := &model.Permission{
			Action:    action,
			IsVirtual: req.IsVirtual,
		}

		// An empty service code makes a global permission.
		if req.ServiceCode != "" {
			svc, err := s.Registry.FindServiceByCode(req.ServiceCode)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "service not found"})
					return
				}
				respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
				return
			}
			perm.ServiceID = &svc.ID
		}

		if err := s.Registry.CreatePermission(perm, s.Config.RejectDuplicatePermissions); err != nil {
			if errors.Is(err, store.ErrConflict) {
				respondWithJSON(w, http.StatusConflict, map[string]string{"detail": "permission already exists"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		respondWithJSON(w, http.StatusCreated, perm)
	}
}

func handleGrantUser(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.PermissionID == 0 {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "user_id and permission_id are required"})
			return
		}
		defer r.Body.Close()

		if err := s.Registry.GrantUserPermission(req.UserID, req.PermissionID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				respondWithJSON(w, http.StatusConflict, map[string]string{"detail": "grant already exists"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRevokeUser(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.PermissionID == 0 {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "user_id and permission_id are required"})
			return
		}
		defer r.Body.Close()

		if err := s.Registry.RevokeUserPermission(req.UserID, req.PermissionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "grant not found"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSetGroupPermissions(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == 0 {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "group_id is required"})
			return
		}
		defer r.Body.Close()

		if err := s.Registry.SetGroupPermissions(req.GroupID, req.PermissionIDs); err != nil {
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGrantGroupService(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupServiceGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == 0 || req.ServiceID == 0 {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "group_id and service_id are required"})
			return
		}
		defer r.Body.Close()

		if err := s.Registry.GrantGroupService(req.GroupID, req.ServiceID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				respondWithJSON(w, http.StatusConflict, map[string]string{"detail": "grant already exists"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRevokeGroupService(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GroupServiceGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GroupID == 0 || req.ServiceID == 0 {
			respondWithJSON(w, http.StatusBadRequest, map[string]string{"detail": "group_id and service_id are required"})
			return
		}
		defer r.Body.Close()

		if err := s.Registry.RevokeGroupService(req.GroupID, req.ServiceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithJSON(w, http.StatusNotFound, map[string]string{"detail": "grant not found"})
				return
			}
			respondWithJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
