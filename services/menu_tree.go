package services

import (
	"cmp"
	"fiber-admin/models"
	"fiber-admin/utils/xerrors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// BuildMenuTree converts a flat, parent-referencing list of menu records into
// a forest sorted by numeric sequence at every level.
//
// A record whose ParentID is nil, zero or unknown becomes a root, so no record
// is dropped. When ids repeat, the last record with that id wins and earlier
// ones are ignored. Records whose parent chain never reaches a root form a
// cycle and make the builder fail with xerrors.ErrMenuCycle.
//
// The input slice is not modified; all nodes are freshly allocated.
func BuildMenuTree(records []models.MenuRecord) ([]models.MenuNode, error) {
	// id -> position of the winning record
	index := make(map[uint]int, len(records))
	for i, r := range records {
		index[r.ID] = i
	}

	children := make(map[uint][]int, len(records))
	roots := make([]int, 0)
	for i, r := range records {
		if index[r.ID] != i {
			continue
		}
		if r.ParentID == nil || *r.ParentID == 0 {
			roots = append(roots, i)
			continue
		}
		if _, ok := index[*r.ParentID]; !ok {
			roots = append(roots, i)
			continue
		}
		children[*r.ParentID] = append(children[*r.ParentID], i)
	}

	visited := make(map[uint]bool, len(index))
	tree := buildLevel(roots, records, children, visited)

	if len(visited) != len(index) {
		return nil, fmt.Errorf("%w: menu ids %s", xerrors.ErrMenuCycle, unvisitedIDs(index, visited))
	}
	return tree, nil
}

func buildLevel(positions []int, records []models.MenuRecord, children map[uint][]int, visited map[uint]bool) []models.MenuNode {
	level := make([]models.MenuNode, 0, len(positions))
	for _, p := range positions {
		r := records[p]
		visited[r.ID] = true
		level = append(level, models.MenuNode{
			ID:       r.ID,
			Name:     r.Name,
			Path:     r.Path,
			Sequence: r.Sequence,
			Icon:     r.Icon,
			SubMenus: buildLevel(children[r.ID], records, children, visited),
		})
	}
	slices.SortStableFunc(level, func(a, b models.MenuNode) int {
		return cmp.Compare(sequenceValue(a.Sequence), sequenceValue(b.Sequence))
	})
	return level
}

// sequenceValue parses the textual sequence; anything non-numeric sorts last.
func sequenceValue(seq string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(seq), 64)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

func unvisitedIDs(index map[uint]int, visited map[uint]bool) string {
	ids := make([]uint, 0)
	for id := range index {
		if !visited[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// FlattenMenuTree walks the forest in pre-order and rebuilds flat records,
// deriving ParentID from the position in the tree.
func FlattenMenuTree(tree []models.MenuNode) []models.MenuRecord {
	out := make([]models.MenuRecord, 0)
	var walk func(nodes []models.MenuNode, parent *uint)
	walk = func(nodes []models.MenuNode, parent *uint) {
		for _, n := range nodes {
			out = append(out, models.MenuRecord{
				ID:       n.ID,
				Name:     n.Name,
				Path:     n.Path,
				Sequence: n.Sequence,
				ParentID: parent,
				Icon:     n.Icon,
			})
			id := n.ID
			walk(n.SubMenus, &id)
		}
	}
	walk(tree, nil)
	return out
}
