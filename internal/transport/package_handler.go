package transport

import (
	"net/http"

	"go.uber.org/zap"

	"promotube-be/internal/logger"
	"promotube-be/internal/packages"
)

type PackageHandler struct {
	packages packages.Service
}

func NewPackageHandler(pkgs packages.Service) *PackageHandler {
	return &PackageHandler{packages: pkgs}
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packages.List(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list packages", zap.Error(err))
		WriteJSONError(w, http.StatusInternalServerError, "failed to list packages")
		return
	}
	WriteJSON(w, http.StatusOK, pkgs)
}
