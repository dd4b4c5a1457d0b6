package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/epuerta/repopatch/internal/fsops"
	"github.com/epuerta/repopatch/internal/patch"
	"github.com/epuerta/repopatch/internal/tree"
)

// Response envelopes are typed per endpoint so the success and failure
// shapes cannot drift between handlers.

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type directoryResponse struct {
	Success bool                  `json:"success"`
	Tree    map[string]*tree.Node `json:"tree"`
	Root    string                `json:"root"`
}

type fileResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

type filesRequest struct {
	Paths []string `json:"paths"`
}

type filesResponse struct {
	Success bool                        `json:"success"`
	Files   map[string]fsops.FileResult `json:"files"`
}

type applyPatchRequest struct {
	DirectoryPath string `json:"directoryPath"`
	PatchContent  string `json:"patchContent"`
}

type applyPatchResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message,omitempty"`
	Error        string   `json:"error,omitempty"`
	AppliedFiles []string `json:"appliedFiles"`
	Details      []string `json:"details"`
}

type checkWritableRequest struct {
	DirectoryPath string `json:"directoryPath"`
}

type checkWritableResponse struct {
	Success  bool   `json:"success"`
	Writable bool   `json:"writable"`
	Error    string `json:"error,omitempty"`
}

type connectResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Port      int    `json:"port"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// handleDirectory builds an ignore-aware tree of the requested directory,
// defaulting to the process working directory.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requested := r.URL.Query().Get("path")
	if requested == "" {
		cwd, err := os.Getwd()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to determine working directory: "+err.Error())
			return
		}
		requested = cwd
	}

	root, err := fsops.ResolveDir(requested)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes, err := tree.NewBuilder(s.log).Build(root)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, directoryResponse{Success: true, Tree: nodes, Root: root})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requested := r.URL.Query().Get("path")
	if requested == "" {
		writeError(w, http.StatusBadRequest, "path parameter is required")
		return
	}

	resolved, err := fsops.ResolveFile(requested)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := fsops.ReadFileString(resolved)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, fileResponse{Success: true, Content: content})
}

// handleFiles reads a batch of files concurrently. Per-path failures do not
// fail the request; only an empty path list does.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req filesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results, err := fsops.ReadBatch(r.Context(), req.Paths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filesResponse{Success: true, Files: results})
}

// handleApplyPatch validates the base directory and payload, then hands the
// payload to the patch engine. Any per-file detail entries make the request
// report failure overall, with partial results still included.
func (s *Server) handleApplyPatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req applyPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	baseDir, err := fsops.ResolveDir(req.DirectoryPath)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid directory path: "+err.Error())
		return
	}

	outcome, err := patch.NewApplier(baseDir, s.log).Apply(req.PatchContent)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := applyPatchResponse{
		AppliedFiles: appliedOrEmpty(outcome.Applied),
		Details:      appliedOrEmpty(outcome.Details),
	}
	if outcome.OK() {
		resp.Success = true
		resp.Message = "Patch applied successfully."
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Error = "Patch application failed for one or more files."
	writeJSON(w, http.StatusInternalServerError, resp)
}

func (s *Server) handleCheckWritable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req checkWritableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	baseDir, err := fsops.ResolveDir(req.DirectoryPath)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, checkWritableResponse{
			Success: false, Writable: false, Error: "invalid directory path: " + err.Error(),
		})
		return
	}

	// A failed probe is still a successful request; the outcome lives in
	// the writable flag.
	resp := checkWritableResponse{Success: true}
	if ok, probeErr := fsops.CheckWritable(baseDir); ok {
		resp.Writable = true
	} else {
		resp.Error = probeErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, connectResponse{
		Success:   true,
		Status:    "Server is running",
		Timestamp: time.Now().Format(time.RFC3339),
		Port:      s.cfg.Port,
	})
}

// appliedOrEmpty keeps list fields serializing as [] instead of null.
func appliedOrEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
