package dashboard

import (
	"errors"
	"net/http"

	"github.com/danieljhkim/homelab/internal/catalog"
	"github.com/danieljhkim/homelab/internal/containers"
	"github.com/danieljhkim/homelab/internal/probe"
	"github.com/go-chi/chi/v5"
)

// Handler serves the read-only status API.
type Handler struct {
	Catalog *catalog.Catalog
	Prober  *probe.Prober

	// Containers is optional; without it /api/containers answers 503.
	Containers containers.Lister
}

// StackView is one stack with its services, as listed by /api/stacks.
type StackView struct {
	Name        string            `json:"name"`
	File        string            `json:"file"`
	Optional    bool              `json:"optional"`
	Description string            `json:"description,omitempty"`
	Services    []catalog.Service `json:"services"`
}

// SweepView is the body of /api/services.
type SweepView struct {
	Target  string         `json:"target"`
	Summary probe.Summary  `json:"summary"`
	Results []probe.Result `json:"results"`
}

// ListStacks returns every stack in catalog order
func (h *Handler) ListStacks(w http.ResponseWriter, r *http.Request) {
	views := make([]StackView, 0, len(h.Catalog.Stacks))
	for _, st := range h.Catalog.Stacks {
		services := h.Catalog.ServicesIn(st.Name)
		if services == nil {
			services = []catalog.Service{}
		}
		views = append(views, StackView{
			Name:        st.Name,
			File:        st.File,
			Optional:    st.Optional,
			Description: st.Description,
			Services:    services,
		})
	}
	SendSuccess(w, views)
}

// ListServices probes the services behind ?target= (default "all")
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		target = catalog.AllTarget
	}

	sel, err := h.Catalog.Resolve(target)
	if err != nil {
		SendError(w, err.Error(), statusFor(err))
		return
	}

	results := h.Prober.Sweep(r.Context(), h.Catalog.ProbeTargets(sel))
	SendSuccess(w, SweepView{
		Target:  target,
		Summary: probe.Summarize(results),
		Results: results,
	})
}

// GetService probes a single service by name
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	svc, ok := h.Catalog.Service(name)
	if !ok {
		SendError(w, "unknown service: "+name, http.StatusNotFound)
		return
	}
	SendSuccess(w, h.Prober.Probe(r.Context(), svc))
}

// ListContainers returns compose containers grouped by project, narrowed by ?project=
func (h *Handler) ListContainers(w http.ResponseWriter, r *http.Request) {
	if h.Containers == nil {
		SendError(w, "docker engine not available", http.StatusServiceUnavailable)
		return
	}
	groups, err := containers.List(r.Context(), h.Containers, r.URL.Query().Get("project"), h.Catalog)
	if err != nil {
		SendError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if groups == nil {
		groups = []containers.Group{}
	}
	SendSuccess(w, groups)
}

func statusFor(err error) int {
	if errors.Is(err, catalog.ErrUnknownTarget) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
