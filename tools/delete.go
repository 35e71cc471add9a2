package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tonelang-ai/tonelang-go/live"
	"github.com/tonelang-ai/tonelang-go/models"
)

type deleteArgs struct {
	Type string `json:"type"`
	Ids  string `json:"ids"`
}

func (s *Server) registerDeleteTool() {
	s.mcp.AddTool(&mcp.Tool{
		Name: "delete",
		Description: "Delete tracks, scenes or devices. Accepts a comma-separated batch. Tracks and scenes are " +
			"addressed as track_N / scene_N; devices as compact paths (t0/d0, t0/d0/pC1/c0/d0). Entries that fail " +
			"to resolve are skipped and reported while the rest proceed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"description": "Kind of object to delete",
					"enum": ["track", "scene", "device"]
				},
				"ids": {
					"type": "string",
					"description": "Comma-separated targets, e.g. \"track_0,track_2\" or \"t0/d0, t0/d1\""
				}
			},
			"required": ["type", "ids"]
		}`),
	}, s.handleDelete)
}

func (s *Server) handleDelete(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args deleteArgs
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}
	return s.deleteBatch(ctx, args)
}

func (s *Server) deleteBatch(ctx context.Context, args deleteArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Ids) == "" {
		return nil, fmt.Errorf("delete: ids is required")
	}

	span := s.metrics.StartToolCall(ctx, "delete", uuid.NewString())
	defer span.Finish()

	// A bad type enum is structural and fails the whole call; per-item
	// problems below are skip-and-log.
	switch args.Type {
	case "track":
		return s.deleteByIndex(args.Ids, "track", "delete_track")
	case "scene":
		return s.deleteByIndex(args.Ids, "scene", "delete_scene")
	case "device":
		return s.deleteDevices(args.Ids)
	default:
		return nil, fmt.Errorf("delete: invalid type %q (allowed: track, scene, device)", args.Type)
	}
}

// deleteByIndex handles positional siblings (tracks, scenes). Targets are
// sorted by descending index before any host call so that earlier deletes
// in the batch never shift the indices of later ones.
func (s *Server) deleteByIndex(ids, kind, hostFunction string) (*mcp.CallToolResult, error) {
	result := models.DeleteResult{Deleted: []string{}}
	var indices []int
	for _, tok := range live.SplitPaths(ids) {
		idx, ok := parseIndexToken(tok, kind)
		if !ok {
			log.Printf("⚠️  Skipping %s id %q: not of the form %s_N", kind, tok, kind)
			result.Skipped = append(result.Skipped, fmt.Sprintf("delete: invalid %s id %q", kind, tok))
			continue
		}
		indices = append(indices, idx)
	}
	live.SortIndicesDescending(indices)

	root := s.client.FromPath("live_set")
	for _, idx := range indices {
		if _, err := root.Call(hostFunction, idx); err != nil {
			log.Printf("⚠️  Skipping %s %d: %v", kind, idx, err)
			result.Skipped = append(result.Skipped, fmt.Sprintf("delete: %s %d: %v", kind, idx, err))
			continue
		}
		result.Deleted = append(result.Deleted, fmt.Sprintf("%s_%d", kind, idx))
	}
	log.Printf("✅ delete: removed %d %ss, skipped %d", len(result.Deleted), kind, len(result.Skipped))
	return textResult(result)
}

// parseIndexToken accepts "track_0" / "scene_3" and the bare compact forms
// "t0" / "s3".
func parseIndexToken(tok, kind string) (int, bool) {
	rest, found := strings.CutPrefix(tok, kind+"_")
	if !found {
		rest, found = strings.CutPrefix(tok, kind[:1])
		if !found {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

type deviceTarget struct {
	raw    string
	parent string
	index  int
}

// deleteDevices resolves each compact path, validates that it names a
// device, and deletes through the immediate parent. The parent is derived
// from the LAST "devices N" marker in the resolved host path, which is the
// only correct choice once racks nest.
func (s *Server) deleteDevices(ids string) (*mcp.CallToolResult, error) {
	result := models.DeleteResult{Deleted: []string{}}
	var targets []deviceTarget

	for _, path := range live.SplitPaths(ids) {
		resolved, err := live.Resolve(s.client, path)
		if err != nil {
			msg := deleteErrorMessage(path, err)
			log.Printf("⚠️  Skipping path %q: %s", path, msg)
			result.Skipped = append(result.Skipped, msg)
			continue
		}
		if err := resolved.RequireType(live.TypeDevice); err != nil {
			msg := deleteErrorMessage(path, err)
			log.Printf("⚠️  Skipping path %q: %s", path, msg)
			result.Skipped = append(result.Skipped, msg)
			continue
		}
		parent, index, err := live.ParentDevicePath(resolved.Object.Path())
		if err != nil {
			return nil, fmt.Errorf("delete failed: could not find device index in path %q", resolved.Object.Path())
		}
		targets = append(targets, deviceTarget{raw: path, parent: parent, index: index})
	}

	// Descending per parent: sibling devices shift down on delete just
	// like tracks do.
	sort.SliceStable(targets, func(i, j int) bool {
		if targets[i].parent != targets[j].parent {
			return targets[i].parent < targets[j].parent
		}
		return targets[i].index > targets[j].index
	})

	for _, t := range targets {
		parentObj := s.client.FromPath(t.parent)
		if _, err := parentObj.Call("delete_device", t.index); err != nil {
			msg := fmt.Sprintf("delete: device at path %q: %v", t.raw, err)
			log.Printf("⚠️  %s", msg)
			result.Skipped = append(result.Skipped, msg)
			continue
		}
		result.Deleted = append(result.Deleted, t.raw)
	}
	log.Printf("✅ delete: removed %d devices, skipped %d", len(result.Deleted), len(result.Skipped))
	return textResult(result)
}

// deleteErrorMessage renders the user-facing contract strings, e.g.
//
//	delete: device at path "t0/d0" does not exist
//	delete: path "t0/d0/c0" resolves to chain, not device
//	delete: Invalid drum pad note in path: t0/d0/p
func deleteErrorMessage(path string, err error) string {
	var pathErr *live.PathError
	if errors.As(err, &pathErr) {
		switch pathErr.Kind {
		case live.ErrNotFound:
			return fmt.Sprintf("delete: device at path %q does not exist", path)
		case live.ErrWrongType:
			return fmt.Sprintf("delete: path %q resolves to %s, not %s", path, pathErr.Actual, live.TypeDevice)
		case live.ErrMalformed:
			return fmt.Sprintf("delete: %s", pathErr.Reason)
		}
	}
	return fmt.Sprintf("delete: %v", err)
}
