package api

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/design"
	"github.com/chazu/foilworks/pkg/engine"
	"github.com/chazu/foilworks/pkg/export"
	"github.com/chazu/foilworks/pkg/reynolds"
)

type naca4Request struct {
	M        *float64 `json:"m"`
	P        *float64 `json:"p"`
	T        *float64 `json:"t"`
	N        int      `json:"n"`
	ClosedTE bool     `json:"closed_te"`
}

type naca5Request struct {
	PPos     *float64 `json:"p_pos"`
	T        *float64 `json:"t"`
	N        int      `json:"n"`
	ClosedTE bool     `json:"closed_te"`
}

type naca6Request struct {
	Family string   `json:"family"`
	T      *float64 `json:"t"`
	N      int      `json:"n"`
}

type reynoldsResponse struct {
	Re float64 `json:"Re"`
}

type scriptRequest struct {
	Source string `json:"source"`
}

type sectionView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AirfoilID string  `json:"airfoil_id"`
	Station   float64 `json:"station"`
	Chord     float64 `json:"chord"`
	Twist     float64 `json:"twist"`
	Span      float64 `json:"span"`
}

type scriptResponse struct {
	Airfoils []*airfoil.Airfoil   `json:"airfoils"`
	Sections []sectionView        `json:"sections"`
	Errors   []engine.EvalError   `json:"errors"`
	Warnings []engine.EvalWarning `json:"warnings,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// required dereferences a mandatory numeric field.
func required(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, validation("missing required field %q", name)
	}
	return *v, nil
}

// checkPoints enforces limits.max_points on a requested sample count.
func (s *Server) checkPoints(n int) error {
	if limit := s.cfg.Limits.MaxPoints; limit > 0 && n > limit {
		return fmt.Errorf("%w: n=%d exceeds the limit of %d", airfoil.ErrInvalidParameter, n, limit)
	}
	return nil
}

func (s *Server) naca4(c echo.Context) error {
	req := naca4Request{N: airfoil.DefaultPoints, ClosedTE: true}
	if err := c.Bind(&req); err != nil {
		return err
	}
	m, err := required("m", req.M)
	if err != nil {
		return err
	}
	p, err := required("p", req.P)
	if err != nil {
		return err
	}
	t, err := required("t", req.T)
	if err != nil {
		return err
	}
	if err := s.checkPoints(req.N); err != nil {
		return err
	}

	foil, err := airfoil.NACA4(m, p, t, airfoil.WithPoints(req.N), airfoil.WithClosedTE(req.ClosedTE))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foil)
}

func (s *Server) naca5(c echo.Context) error {
	req := naca5Request{N: airfoil.DefaultPoints, ClosedTE: true}
	if err := c.Bind(&req); err != nil {
		return err
	}
	pPos, err := required("p_pos", req.PPos)
	if err != nil {
		return err
	}
	t, err := required("t", req.T)
	if err != nil {
		return err
	}
	if err := s.checkPoints(req.N); err != nil {
		return err
	}

	foil, err := airfoil.NACA5(pPos, t, airfoil.WithPoints(req.N), airfoil.WithClosedTE(req.ClosedTE))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foil)
}

func (s *Server) naca6(c echo.Context) error {
	req := naca6Request{N: airfoil.DefaultPoints}
	if err := c.Bind(&req); err != nil {
		return err
	}
	t, err := required("t", req.T)
	if err != nil {
		return err
	}
	if err := s.checkPoints(req.N); err != nil {
		return err
	}

	foil, err := airfoil.NACA6(req.Family, t, s.lib, airfoil.WithPoints(req.N))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foil)
}

func (s *Server) reynolds(c echo.Context) error {
	var in reynolds.Input
	if err := c.Bind(&in); err != nil {
		return err
	}
	re, err := reynolds.Compute(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reynoldsResponse{Re: re})
}

// airfoilByDesignation generates a section from its designation and
// writes it in the requested export format.
func (s *Server) airfoilByDesignation(c echo.Context) error {
	n := airfoil.DefaultPoints
	closedTE := true
	format := ""
	chord := export.DefaultChord
	err := echo.QueryParamsBinder(c).
		Int("n", &n).
		Bool("closed_te", &closedTE).
		String("format", &format).
		Float64("chord", &chord).
		BindError()
	if err != nil {
		return err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	d, err := airfoil.ParseDesignation(c.Param("designation"))
	if err != nil {
		return err
	}
	if err := s.checkPoints(n); err != nil {
		return err
	}

	foil, err := airfoil.Generate(d, s.lib, airfoil.WithPoints(n), airfoil.WithClosedTE(closedTE))
	if err != nil {
		return err
	}
	if f == export.FormatJSON {
		return c.JSON(http.StatusOK, foil)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, foil, f, export.WithChord(chord)); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename(foil, f)}))
	return c.Blob(http.StatusOK, f.ContentType(), buf.Bytes())
}

// script evaluates a design script. Script errors are reported in the
// body with a 200 status; only a timeout or an internal fault fails the
// request.
func (s *Server) script(c echo.Context) error {
	var req scriptRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	// A fresh engine per request: evaluations on one engine supersede each other.
	eng := engine.NewEngine(
		engine.WithTimeout(s.cfg.GetScriptTimeout()),
		engine.WithBaseLibrary(s.lib),
		engine.WithMaxPoints(s.cfg.Limits.MaxPoints),
		engine.WithSlots(s.scripts),
		engine.WithLogger(s.log),
	)
	res, err := eng.EvaluateFull(req.Source)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newScriptResponse(res))
}

func newScriptResponse(res *engine.EvalResult) scriptResponse {
	resp := scriptResponse{
		Airfoils: []*airfoil.Airfoil{},
		Sections: []sectionView{},
		Errors:   []engine.EvalError{},
		Warnings: res.Warnings,
	}
	if len(res.Errors) > 0 {
		resp.Errors = res.Errors
	}
	if res.Design == nil {
		return resp
	}
	if len(res.Design.Airfoils) > 0 {
		resp.Airfoils = res.Design.Airfoils
	}
	resp.Sections = lo.Map(res.Design.Ordered(), func(sec *design.Section, _ int) sectionView {
		return sectionView{
			ID:        sec.ID.String(),
			Name:      sec.Name,
			AirfoilID: sec.AirfoilID(),
			Station:   sec.Station,
			Chord:     sec.Chord,
			Twist:     sec.Twist,
			Span:      sec.Span,
		}
	})
	return resp
}
