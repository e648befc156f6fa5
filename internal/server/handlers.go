package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"wallsketch/internal/editor"
	"wallsketch/internal/geom"
	"wallsketch/internal/history"
	"wallsketch/internal/plan"
	"wallsketch/internal/snapshot"
)

type targetPayload struct {
	Wall   int `json:"wall"`
	Vertex int `json:"vertex"`
}

type settingsPayload struct {
	Thickness int     `json:"thickness"`
	Snap      bool    `json:"snap"`
	Grid      float64 `json:"grid"`
	Tolerance float64 `json:"tolerance"`
}

type sessionResponse struct {
	ID        string          `json:"id"`
	Plan      plan.Plan       `json:"plan"`
	Stats     plan.Stats      `json:"stats"`
	Tool      string          `json:"tool"`
	Settings  settingsPayload `json:"settings"`
	Selection *targetPayload  `json:"selection"`
	Hover     *targetPayload  `json:"hover"`
	Drag      string          `json:"drag,omitempty"`
	Extending bool            `json:"extending"`
	CanUndo   bool            `json:"canUndo"`
	CanRedo   bool            `json:"canRedo"`
}

type viewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type eventRequest struct {
	Type     string           `json:"type"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Key      string           `json:"key"`
	Viewport *viewportPayload `json:"viewport"`
}

type eventResponse struct {
	Committed bool `json:"committed"`
	sessionResponse
}

type settingsRequest struct {
	Tool      *string `json:"tool"`
	Thickness *int    `json:"thickness"`
	Snap      *bool   `json:"snap"`
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func toPayload(t *editor.Target) *targetPayload {
	if t == nil {
		return nil
	}
	return &targetPayload{Wall: t.Wall, Vertex: t.Vertex}
}

// snapshotOf must be called with sess.mu held.
func snapshotOf(sess *session) sessionResponse {
	st := sess.editor.State()
	p := sess.editor.Plan()
	resp := sessionResponse{
		ID:    sess.id,
		Plan:  p,
		Stats: p.Stats(),
		Tool:  st.Tool.String(),
		Settings: settingsPayload{
			Thickness: st.Settings.Thickness,
			Snap:      st.Settings.Snap,
			Grid:      st.Settings.Grid,
			Tolerance: st.Settings.Tolerance,
		},
		Selection: toPayload(st.Selection),
		Hover:     toPayload(st.Hover),
		Extending: st.Extend != nil,
		CanUndo:   sess.history.CanUndo(),
		CanRedo:   sess.history.CanRedo(),
	}
	if st.Drag != nil {
		resp.Drag = st.Drag.Kind.String()
	}
	if resp.Plan.Walls == nil {
		resp.Plan.Walls = []plan.Wall{}
	}
	return resp
}

// decodeBody reads a plan from the request body. An empty body is an empty
// plan.
func decodeBody(c fiber.Ctx) (plan.Plan, error) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return plan.Plan{}, nil
	}
	p, err := plan.Decode(body, "")
	if err != nil && !errors.Is(err, plan.ErrNoGeometry) {
		return plan.Plan{}, err
	}
	return p, nil
}

// withSession looks up :id and runs fn with the session locked.
func (s *Server) withSession(c fiber.Ctx, fn func(*session) error) error {
	sess, ok := s.get(c.Params("id"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

func (s *Server) CreateSession(c fiber.Ctx) error {
	p, err := decodeBody(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	sess, err := s.create(context.Background(), p)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "store session: "+err.Error())
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.Status(http.StatusCreated).JSON(snapshotOf(sess))
}

func (s *Server) GetSession(c fiber.Ctx) error {
	return s.withSession(c, func(sess *session) error {
		return c.JSON(snapshotOf(sess))
	})
}

func (s *Server) PostEvent(c fiber.Ctx) error {
	var req eventRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	return s.withSession(c, func(sess *session) error {
		at := geom.Pt(req.X, req.Y)
		if req.Viewport != nil {
			dims := sess.editor.Plan().Dimensions
			vp := editor.Viewport{
				ScreenW: req.Viewport.Width,
				ScreenH: req.Viewport.Height,
				DocW:    dims.Width,
				DocH:    dims.Height,
			}
			at = vp.Client(req.X, req.Y)
		}
		var ev editor.Event
		switch req.Type {
		case "down":
			ev = editor.PointerDown{At: at}
		case "move":
			ev = editor.PointerMove{At: at}
		case "up":
			ev = editor.PointerUp{At: at}
		case "key":
			ev = editor.KeyPress{Key: req.Key}
		default:
			return errorJSON(c, http.StatusBadRequest, "unknown event type "+strconv.Quote(req.Type))
		}
		committed := sess.editor.Handle(ev)
		if committed {
			s.record(context.Background(), sess, "commit")
		}
		return c.JSON(eventResponse{Committed: committed, sessionResponse: snapshotOf(sess)})
	})
}

func (s *Server) PutSettings(c fiber.Ctx) error {
	var req settingsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	return s.withSession(c, func(sess *session) error {
		if req.Tool != nil {
			t, ok := editor.ParseTool(*req.Tool)
			if !ok {
				return errorJSON(c, http.StatusBadRequest, "unknown tool "+strconv.Quote(*req.Tool))
			}
			sess.editor.SetTool(t)
		}
		if req.Thickness != nil {
			sess.editor.SetThickness(*req.Thickness)
		}
		if req.Snap != nil {
			sess.editor.SetSnap(*req.Snap)
		}
		return c.JSON(snapshotOf(sess))
	})
}

func (s *Server) Undo(c fiber.Ctx) error {
	return s.step(c, "undo", (*history.History[plan.Plan]).Undo)
}

func (s *Server) Redo(c fiber.Ctx) error {
	return s.step(c, "redo", (*history.History[plan.Plan]).Redo)
}

func (s *Server) step(c fiber.Ctx, reason string, move func(*history.History[plan.Plan]) error) error {
	return s.withSession(c, func(sess *session) error {
		if err := move(sess.history); err != nil {
			return errorJSON(c, http.StatusConflict, err.Error())
		}
		sess.editor.SetPlan(sess.history.Present())
		s.record(context.Background(), sess, reason)
		return c.JSON(snapshotOf(sess))
	})
}

// PutPlan swaps in a new plan and drops the undo history.
func (s *Server) PutPlan(c fiber.Ctx) error {
	p, err := decodeBody(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	return s.withSession(c, func(sess *session) error {
		sess.history.Reset(p)
		sess.editor.SetPlan(p)
		s.record(context.Background(), sess, "reset")
		return c.JSON(snapshotOf(sess))
	})
}

func (s *Server) GetPNG(c fiber.Ctx) error {
	opts := snapshot.Options{
		Width:  queryInt(c, "width"),
		Height: queryInt(c, "height"),
		Labels: c.Query("labels") == "1" || c.Query("labels") == "true",
	}
	if opts.Width > snapshot.MaxSide || opts.Height > snapshot.MaxSide {
		return errorJSON(c, http.StatusBadRequest,
			fmt.Sprintf("snapshot size %dx%d exceeds %d", opts.Width, opts.Height, snapshot.MaxSide))
	}
	return s.withSession(c, func(sess *session) error {
		var buf bytes.Buffer
		if err := snapshot.Encode(&buf, sess.editor.Plan(), opts); err != nil {
			if errors.Is(err, snapshot.ErrEmptyCanvas) {
				return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
			}
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	})
}

func (s *Server) GetRevisions(c fiber.Ctx) error {
	return s.withSession(c, func(sess *session) error {
		n, err := s.revs.Count(context.Background(), sess.id)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"id": sess.id, "revisions": n})
	})
}

func (s *Server) DeleteSession(c fiber.Ctx) error {
	id := c.Params("id")
	if !s.remove(id) {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	if err := s.revs.DeletePlan(context.Background(), id); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}

func queryInt(c fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
