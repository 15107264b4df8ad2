package demos

import (
	"fmt"
	"sort"
)

type entry struct {
	kind    Kind
	summary string
	build   func(Params) Demo
}

type Registry struct {
	demos map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{demos: make(map[string]entry)}

	r.demos["canvas_create"] = entry{OneShot, "2D text on one canvas, WebGL clear on another", newCanvasCreate}
	r.demos["draw_point"] = entry{OneShot, "three points of size 10", newDrawPoint}
	r.demos["draw_triangle"] = entry{OneShot, "translucent 2D triangle", newDrawTriangle}
	r.demos["draw_line"] = entry{OneShot, "six vertices with a selectable primitive mode", newDrawLine}
	r.demos["draw_square"] = entry{OneShot, "indexed quad", newDrawSquare}
	r.demos["draw_color"] = entry{OneShot, "indexed quad with per-vertex colors", newDrawColor}
	r.demos["draw_triangle_trans"] = entry{OneShot, "triangle moved by a translation uniform", newDrawTriangleTrans}
	r.demos["draw_triangle_scale"] = entry{OneShot, "triangle scaled by a transform matrix", newDrawTriangleScale}
	r.demos["triangle_rotate"] = entry{Animated, "white triangle spinning about z", newTriangleRotate}
	r.demos["cube_rotate"] = entry{Animated, "colored cube spinning about z, y and x", newCubeRotate}
	r.demos["canvas_stress"] = entry{Animated, "bouncing-ball stress test", newStress}

	return r
}

func (r *Registry) Get(name string, p Params) (Demo, error) {
	e, ok := r.demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo: %s", name)
	}
	return e.build(p), nil
}

func (r *Registry) Kind(name string) (Kind, bool) {
	e, ok := r.demos[name]
	return e.kind, ok
}

func (r *Registry) Summary(name string) string {
	return r.demos[name].summary
}

// List returns the demo names sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.demos))
	for name := range r.demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
