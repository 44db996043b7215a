package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spencer-p/daylightchart/pkg/data"
)

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.locations.List()
	if err != nil {
		s.fail(w, err)
		return
	}
	if locs == nil {
		locs = []data.Location{}
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(locs); err != nil {
		s.logger.Error("Failed to encode JSON result", zap.Error(err))
	}
}

// saveLocation accepts a JSON body or a form. Forms are redirected back to
// the page that posted them.
func (s *Server) saveLocation(w http.ResponseWriter, r *http.Request) {
	var loc data.Location
	isForm := r.Header.Get("Content-Type") != "application/json"
	if isForm {
		if err := r.ParseForm(); err != nil {
			s.fail(w, fmt.Errorf("%w: %v", errBadQuery, err))
			return
		}
		lat, err := strconv.ParseFloat(r.PostForm.Get("lat"), 64)
		if err != nil {
			s.fail(w, fmt.Errorf("%w: latitude %q", errBadQuery, r.PostForm.Get("lat")))
			return
		}
		lon, err := strconv.ParseFloat(r.PostForm.Get("lon"), 64)
		if err != nil {
			s.fail(w, fmt.Errorf("%w: longitude %q", errBadQuery, r.PostForm.Get("lon")))
			return
		}
		loc = data.Location{
			Name: r.PostForm.Get("name"),
			Lat:  lat,
			Long: lon,
			Zone: r.PostForm.Get("zone"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", errBadQuery, err))
		return
	}
	if loc.Name == "" {
		s.fail(w, fmt.Errorf("%w: a location needs a name", errBadQuery))
		return
	}
	if loc.Zone == "" {
		loc.Zone = "UTC"
	}

	saved, err := s.locations.Save(loc)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("Saved location", zap.String("name", saved.Name))

	if isForm {
		http.Redirect(w, r, pathJoinPreservePrefix(s.prefix, "?location="+url.QueryEscape(saved.Name)), http.StatusFound)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(saved); err != nil {
		s.logger.Error("Failed to encode JSON result", zap.Error(err))
	}
}

func (s *Server) deleteLocation(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.locations.Delete(name); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("Deleted location", zap.String("name", name))
	w.WriteHeader(http.StatusNoContent)
}
