package content

import (
	"sort"

	"github.com/wamuzi-news/internal/models"
)

// BuildCommentTree returns the direct replies of parentID, each carrying its
// own replies, oldest first at every level. Pass models.RootParent for the
// top-level thread.
//
// Comments whose parent is not in the collection are never reached and are
// therefore left out of the tree.
func BuildCommentTree(comments []models.Comment, parentID int64) []models.CommentNode {
	children := make(map[int64][]models.Comment, len(comments))
	for _, c := range comments {
		children[c.Parent] = append(children[c.Parent], c)
	}
	for _, list := range children {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Date.Equal(list[j].Date) {
				return list[i].ID < list[j].ID
			}
			return list[i].Date.Before(list[j].Date)
		})
	}

	visited := make(map[int64]bool, len(comments))
	return buildLevel(children, parentID, visited)
}

func buildLevel(children map[int64][]models.Comment, parentID int64, visited map[int64]bool) []models.CommentNode {
	list := children[parentID]
	nodes := make([]models.CommentNode, 0, len(list))
	for _, c := range list {
		// a cycle reachable from parentID would otherwise recurse forever
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		nodes = append(nodes, models.CommentNode{
			Comment: c,
			Replies: buildLevel(children, c.ID, visited),
		})
	}
	return nodes
}

// CountNodes returns the number of comments in a built tree
func CountNodes(nodes []models.CommentNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountNodes(n.Replies)
	}
	return total
}
