package sink

import (
	"strings"
	"testing"
)

func TestRenderSVG(t *testing.T) {
	res := testLayout(t)

	svg := string(RenderSVG(res))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}

	// One card per node.
	if got := strings.Count(svg, `class="card"`); got != 4 {
		t.Errorf("cards = %d, want 4", got)
	}

	// Trunk segments exist for both families.
	if !strings.Contains(svg, `class="trunk"`) {
		t.Error("expected family trunk segments")
	}

	// No labels without the option.
	if strings.Contains(svg, "<text") {
		t.Error("labels should be opt-in")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	res := testLayout(t)

	svg := string(RenderSVG(res, WithLabels()))
	if !strings.Contains(svg, "Robin Adler") {
		t.Error("WithLabels should render display names")
	}
}

func TestRenderSVGPalette(t *testing.T) {
	res := testLayout(t)

	svg := string(RenderSVG(res, WithPalette("#111111", "#222222", "#333333", "#444444")))
	if !strings.Contains(svg, "#222222") {
		t.Error("root card should use the palette root fill")
	}
	if strings.Contains(svg, "#fff3c4") {
		t.Error("default palette should be fully overridden")
	}
}
