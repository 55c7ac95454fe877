// Package outline turns decoded stroke points and a resolved pen style into
// renderable geometry.
//
// Two strategies exist. Standard builds a single closed polygon around a
// variable-width center line. Italic models a flat nib and produces two
// side polylines, Left and Right, whose quads are filled as triangles.
// Select picks the strategy once per resolved style:
//
//	res := outline.Select(st).Generate(points)
//	switch res.Kind {
//	case outline.KindStandard:
//		path := outline.SmoothClosed(res.Polygon)
//	case outline.KindItalic:
//		tris := outline.Triangulate(*res.Sides)
//	}
//
// Cache memoizes results and their derived forms per stroke and level of
// detail. It is derived state only; a stroke's encoded points remain
// authoritative.
package outline
