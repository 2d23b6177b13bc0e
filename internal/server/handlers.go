package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/username/chinese-calendar/internal/calendar"
	"github.com/username/chinese-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type datesResponse struct {
	Start dateutil.Date   `json:"start"`
	End   dateutil.Date   `json:"end"`
	Count int             `json:"count"`
	Dates []dateutil.Date `json:"dates"`
}

type findWorkdayResponse struct {
	From  dateutil.Date `json:"from"`
	Delta int           `json:"delta"`
	Date  dateutil.Date `json:"date"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(mux.Vars(r)["date"])
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	dayInfo, err := s.cal.GetDayInfo(date)
	if err != nil {
		s.writeCalendarError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dayInfo)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid year %q", vars["year"])})
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid month %q", vars["month"])})
		return
	}

	monthInfo, err := s.cal.GetMonthInfo(year, time.Month(month))
	if err != nil {
		s.writeCalendarError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, monthInfo)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	s.handleDates(w, r, calendar.Holidays)
}

func (s *Server) handleWorkdays(w http.ResponseWriter, r *http.Request) {
	s.handleDates(w, r, calendar.Workdays)
}

type rangeQuery func(cal calendar.Calendar, start, end calendar.DateLike, includeWeekends bool) ([]dateutil.Date, error)

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request, query rangeQuery) {
	q := r.URL.Query()

	start, err := parseDate(q.Get("start"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start: " + err.Error()})
		return
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end: " + err.Error()})
		return
	}

	includeWeekends := true
	if v := q.Get("include_weekends"); v != "" {
		includeWeekends, err = strconv.ParseBool(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "include_weekends must be a boolean"})
			return
		}
	}

	dates, err := query(s.cal, start, end, includeWeekends)
	if err != nil {
		s.writeCalendarError(w, err)
		return
	}
	if dates == nil {
		dates = []dateutil.Date{}
	}

	s.writeJSON(w, http.StatusOK, datesResponse{
		Start: start,
		End:   end,
		Count: len(dates),
		Dates: dates,
	})
}

func (s *Server) handleFindWorkday(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from := dateutil.Today()
	if v := q.Get("from"); v != "" {
		var err error
		from, err = parseDate(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "from: " + err.Error()})
			return
		}
	}

	delta := 0
	if v := q.Get("delta"); v != "" {
		var err error
		delta, err = strconv.Atoi(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "delta must be an integer"})
			return
		}
	}

	date, err := calendar.FindWorkday(s.cal, delta, from)
	if err != nil {
		s.writeCalendarError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, findWorkdayResponse{From: from, Delta: delta, Date: date})
}

func parseDate(value string) (dateutil.Date, error) {
	if value == "" {
		return dateutil.Date{}, errors.New("date is required")
	}
	t, err := dateutil.ParseDate(value)
	if err != nil {
		return dateutil.Date{}, err
	}
	return dateutil.FromTime(t), nil
}

func (s *Server) writeCalendarError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, calendar.ErrOutOfRange):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, calendar.ErrUnsupportedType):
		status = http.StatusBadRequest
	default:
		s.logger.Error("Calendar query failed", zap.Error(err))
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}
