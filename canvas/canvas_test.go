package canvas

import (
	"image"
	"math"
	"testing"

	"drone-gallery/zoom"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{X: 120, Y: 80, Level: 3}
	sx, sy := cam.WorldToScreen(121, 79, 400, 300)
	if !near(sx, 408) || !near(sy, 292) {
		t.Errorf("Expected (408, 292), got (%f, %f)", sx, sy)
	}
	wx, wy := cam.ScreenToWorld(sx, sy, 400, 300)
	if !near(wx, 121) || !near(wy, 79) {
		t.Errorf("Expected (121, 79), got (%f, %f)", wx, wy)
	}
}

func TestCameraPan(t *testing.T) {
	cam := Camera{X: 100, Y: 100, Level: 2}
	cam.Pan(40, -20)
	if !near(cam.X, 90) || !near(cam.Y, 105) {
		t.Errorf("Expected (90, 105), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomAtKeepsPointUnderCursor(t *testing.T) {
	cam := Camera{X: 128, Y: 128, Level: 4}
	beforeX, beforeY := cam.ScreenToWorld(500, 200, 400, 300)

	cam.ZoomAt(500, 200, 400, 300, 1)

	if cam.Level != 5 {
		t.Errorf("Expected level 5, got %f", cam.Level)
	}
	afterX, afterY := cam.ScreenToWorld(500, 200, 400, 300)
	if !near(beforeX, afterX) || !near(beforeY, afterY) {
		t.Errorf("Expected world point to stay put, got (%f,%f) -> (%f,%f)", beforeX, beforeY, afterX, afterY)
	}

	cam.ZoomAt(0, 0, 400, 300, 100)
	if cam.Level != MaxLevel {
		t.Errorf("Expected level clamped to %f, got %f", MaxLevel, cam.Level)
	}
}

func TestFitBounds(t *testing.T) {
	var cam Camera
	// 10 by 5 world pixels into a 400 by 300 view with 60px padding:
	// min(280/10, 180/5) = 28, floor(log2 28) = 4.
	cam.FitBounds(100, 50, 110, 55, 400, 300, 60, 5)
	if cam.Level != 4 {
		t.Errorf("Expected level 4, got %f", cam.Level)
	}
	if !near(cam.X, 105) || !near(cam.Y, 52.5) {
		t.Errorf("Expected center (105, 52.5), got (%f, %f)", cam.X, cam.Y)
	}

	cam.FitBounds(30, 40, 30, 40, 400, 300, 60, 5)
	if cam.Level != 5 || cam.X != 30 || cam.Y != 40 {
		t.Errorf("Expected single point at level 5, got %+v", cam)
	}
}

func TestFlyToNeverZoomsOut(t *testing.T) {
	cam := Camera{X: 0, Y: 0, Level: 10}
	cam.FlyTo(50, 60, 8)
	for i := 0; i < 500 && cam.Flying(); i++ {
		cam.Step()
	}
	if cam.Flying() {
		t.Fatal("Expected flight to land")
	}
	if cam.X != 50 || cam.Y != 60 || cam.Level != 10 {
		t.Errorf("Expected (50, 60) at level 10, got %+v", cam)
	}

	cam = Camera{Level: 3}
	cam.FlyTo(1, 1, 8)
	for i := 0; i < 500 && cam.Flying(); i++ {
		cam.Step()
	}
	if cam.Level != 8 {
		t.Errorf("Expected level raised to 8, got %f", cam.Level)
	}
}

func TestPanCancelsFlight(t *testing.T) {
	cam := Camera{Level: 3}
	cam.FlyTo(100, 100, 8)
	cam.Pan(1, 1)
	if cam.Flying() {
		t.Errorf("Expected pan to cancel the flight")
	}
}

func TestProjection(t *testing.T) {
	x, y := Project(0, 0)
	if !near(x, 128) || !near(y, 128) {
		t.Errorf("Expected (128, 128), got (%f, %f)", x, y)
	}
	x, _ = Project(0, -180)
	if !near(x, 0) {
		t.Errorf("Expected x 0 at the antimeridian, got %f", x)
	}

	lat, lng := Unproject(Project(35.6895, 139.6917))
	if !near(lat, 35.6895) || !near(lng, 139.6917) {
		t.Errorf("Expected round trip, got (%f, %f)", lat, lng)
	}

	_, yTop := Project(89.9, 0)
	if !near(yTop, 0) {
		t.Errorf("Expected latitude clamped to the top edge, got %f", yTop)
	}
}

func TestGraticuleSpacing(t *testing.T) {
	if s := GraticuleSpacing(1); s != 30 {
		t.Errorf("Expected 30 degrees at level 1, got %f", s)
	}
	if s := GraticuleSpacing(12); s != 0.05 {
		t.Errorf("Expected 0.05 degrees at level 12, got %f", s)
	}
}

func TestImageGeoMMatchesProjection(t *testing.T) {
	viewport := image.Rect(100, 50, 900, 650)
	st := zoom.State{Scale: 2, Offset: zoom.Pt(30, -10)}

	// A 1600x1200 image fits at half size into 800x600.
	if fit := FitScale(1600, 1200, viewport); fit != 0.5 {
		t.Fatalf("Expected fit 0.5, got %f", fit)
	}
	geo := ImageGeoM(st, 1600, 1200, viewport)

	// The top-left pixel of the fitted image sits at the viewport's top-left.
	c := Center(viewport)
	layout := zoom.Pt(100, 50)
	want := st.Project(layout, c)
	gx, gy := geo.Apply(0, 0)
	if !near(gx, want.X) || !near(gy, want.Y) {
		t.Errorf("Expected (%f, %f), got (%f, %f)", want.X, want.Y, gx, gy)
	}

	// The image center follows the offset only.
	gx, gy = geo.Apply(800, 600)
	if !near(gx, 530) || !near(gy, 340) {
		t.Errorf("Expected (530, 340), got (%f, %f)", gx, gy)
	}
}

func TestSmallImageIsNotEnlarged(t *testing.T) {
	if fit := FitScale(200, 100, image.Rect(0, 0, 800, 600)); fit != 1 {
		t.Errorf("Expected fit 1, got %f", fit)
	}
}

func TestLocal(t *testing.T) {
	p := Local(image.Pt(150, 80), image.Rect(100, 50, 900, 650))
	if p != zoom.Pt(50, 30) {
		t.Errorf("Expected (50, 30), got %v", p)
	}
}
