package viz

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/moviemate/infradiagram/diagram"
)

// --- Excalidraw Generator ---

// excalidrawSeed fixes element IDs and seeds so the same graph always
// produces the same scene.
const excalidrawSeed = 20240601

type ExcalidrawGenerator struct{}

func (g *ExcalidrawGenerator) Generate(graph *diagram.Graph) (string, error) {
	if err := graph.Validate(); err != nil {
		return "", err
	}
	scene := newExcalidrawScene(excalidrawSeed)
	layout := struct {
		startX, startY, elementWidth, elementHeight, gapX, gapY, frameInset float64
	}{
		startX: 50.0, startY: 50.0,
		elementWidth: 180.0, elementHeight: 80.0,
		gapX: 80.0, gapY: 140.0, frameInset: 20.0,
	}
	nodeToRectID := make(map[string]string)

	rootNodes, clusters := graph.Root().Members()
	rows := [][]*diagram.Node{rootNodes}
	labels := []string{""}
	for _, c := range clusters {
		rows = append(rows, flattenCluster(c))
		labels = append(labels, c.Label)
	}

	y := layout.startY
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if labels[i] != "" {
			width := float64(len(row))*(layout.elementWidth+layout.gapX) - layout.gapX + 2*layout.frameInset
			height := layout.elementHeight + 2*layout.frameInset + 24
			frame, _, err := scene.addRectangle(layout.startX-layout.frameInset, y-layout.frameInset-24, width, height, "", &ExcalidrawElement{
				BackgroundColor: clusterBackgrounds[0], StrokeColor: clusterBorder, StrokeStyle: "solid",
			}, nil)
			if err != nil {
				return "", fmt.Errorf("error adding cluster %q to Excalidraw scene: %w", labels[i], err)
			}
			if _, _, err := scene.addText(frame.X+10, frame.Y+6, width-20, 20, labels[i], nil, &ExcalidrawElement{TextAlign: "left"}); err != nil {
				return "", err
			}
		}
		x := layout.startX
		for _, n := range row {
			props := &ExcalidrawElement{BackgroundColor: n.Kind.Info().FillColor}
			if n.IsPlaceholder() {
				props.StrokeStyle = "dashed"
			}
			if n.Kind == diagram.Custom {
				props.BackgroundColor = "#ffffff"
			}
			rect, _, err := scene.addRectangle(x, y, layout.elementWidth, layout.elementHeight, n.Label, props, nil)
			if err != nil {
				return "", fmt.Errorf("error adding node %s to Excalidraw scene: %w", n.ID, err)
			}
			nodeToRectID[n.ID] = rect.ID
			x += layout.elementWidth + layout.gapX
		}
		y += layout.elementHeight + layout.gapY
	}

	for _, e := range graph.Edges() {
		fromRectID, fromOk := nodeToRectID[e.From]
		toRectID, toOk := nodeToRectID[e.To]
		if !fromOk || !toOk {
			return "", fmt.Errorf("could not find Excalidraw ID for node %s or %s for edge", e.From, e.To)
		}
		props := &ExcalidrawElement{StrokeColor: e.Color}
		switch e.Style {
		case diagram.Dashed, diagram.Dotted:
			props.StrokeStyle = string(e.Style)
		case diagram.Bold:
			props.StrokeWidth = 3
		}
		if _, _, err := scene.addArrow(fromRectID, toRectID, e.Label, e.Dir, props); err != nil {
			return "", fmt.Errorf("error adding edge from %s to %s (label: %s) to Excalidraw scene: %w", e.From, e.To, e.Label, err)
		}
	}
	return scene.toJSON()
}

// --- Excalidraw Helper Structs and Methods ---

type ExcalidrawElement struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	Angle           float64         `json:"angle,omitempty"`
	StrokeColor     string          `json:"strokeColor"`
	BackgroundColor string          `json:"backgroundColor"`
	FillStyle       string          `json:"fillStyle"`
	StrokeWidth     int             `json:"strokeWidth"`
	StrokeStyle     string          `json:"strokeStyle"`
	Roughness       int             `json:"roughness"`
	Opacity         int             `json:"opacity"`
	Seed            int64           `json:"seed"`
	Version         int             `json:"version"`
	VersionNonce    int64           `json:"versionNonce"`
	IsDeleted       bool            `json:"isDeleted,omitempty"`
	BoundElements   []*BoundElement `json:"boundElements,omitempty"`
	StartBinding    *Binding        `json:"startBinding,omitempty"`
	EndBinding      *Binding        `json:"endBinding,omitempty"`
	Points          [][]float64     `json:"points,omitempty"`
	Text            string          `json:"text,omitempty"`
	FontSize        float64         `json:"fontSize,omitempty"`
	FontFamily      int             `json:"fontFamily,omitempty"`
	TextAlign       string          `json:"textAlign,omitempty"`
	VerticalAlign   string          `json:"verticalAlign,omitempty"`
	Baseline        int             `json:"baseline,omitempty"`
	ContainerId     *string         `json:"containerId,omitempty"`
	OriginalText    string          `json:"originalText,omitempty"`
	StrokeSharpness string          `json:"strokeSharpness,omitempty"`
	StartArrowhead  *string         `json:"startArrowhead"`
	EndArrowhead    *string         `json:"endArrowhead"`
}

type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus,omitempty"`
	Gap       float64 `json:"gap,omitempty"`
}

type BoundElement struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type ExcalidrawFile struct {
	Type     string               `json:"type"`
	Version  int                  `json:"version"`
	Source   string               `json:"source"`
	Elements []*ExcalidrawElement `json:"elements"`
	AppState map[string]any       `json:"appState"`
	Files    map[string]any       `json:"files"`
}

type ExcalidrawScene struct {
	elements     []*ExcalidrawElement
	elementIDMap map[string]*ExcalidrawElement
	randSource   *rand.Rand
}

func newExcalidrawScene(seed int64) *ExcalidrawScene {
	return &ExcalidrawScene{
		elements:     make([]*ExcalidrawElement, 0),
		elementIDMap: make(map[string]*ExcalidrawElement),
		randSource:   rand.New(rand.NewSource(seed)),
	}
}

func (s *ExcalidrawScene) newSeed() int64 { return s.randSource.Int63n(2147483646) + 1 }
func (s *ExcalidrawScene) newElementID(prefix string) string {
	return prefix + "_" + strconv.FormatInt(s.newSeed(), 36)
}

func (s *ExcalidrawScene) addElement(element *ExcalidrawElement) error {
	if element.ID == "" {
		element.ID = s.newElementID(element.Type)
	}
	if _, dup := s.elementIDMap[element.ID]; dup {
		return fmt.Errorf("duplicate element id %s", element.ID)
	}
	s.elements = append(s.elements, element)
	s.elementIDMap[element.ID] = element
	return nil
}

func (s *ExcalidrawScene) getElement(id string) *ExcalidrawElement { return s.elementIDMap[id] }

// applyProps copies the non-zero styling fields of props onto el.
func applyProps(el, props *ExcalidrawElement) {
	if props == nil {
		return
	}
	if props.StrokeColor != "" {
		el.StrokeColor = props.StrokeColor
	}
	if props.BackgroundColor != "" {
		el.BackgroundColor = props.BackgroundColor
	}
	if props.StrokeStyle != "" {
		el.StrokeStyle = props.StrokeStyle
	}
	if props.StrokeWidth != 0 {
		el.StrokeWidth = props.StrokeWidth
	}
	if props.TextAlign != "" {
		el.TextAlign = props.TextAlign
	}
}

func (s *ExcalidrawScene) addRectangle(x, y, w, h float64, label string, props, labelProps *ExcalidrawElement) (*ExcalidrawElement, *ExcalidrawElement, error) {
	rect := &ExcalidrawElement{
		Type: "rectangle", X: x, Y: y, Width: w, Height: h, StrokeColor: "#1e1e1e", BackgroundColor: "#f8f9fa",
		FillStyle: "solid", StrokeWidth: 1, StrokeStyle: "solid", Roughness: 1, StrokeSharpness: "round",
		Seed: s.newSeed(), Version: 2, VersionNonce: s.newSeed(), Opacity: 100,
	}
	applyProps(rect, props)
	if err := s.addElement(rect); err != nil {
		return nil, nil, err
	}
	if label == "" {
		return rect, nil, nil
	}
	text, _, err := s.addText(x+10, y+(h-24)/2, w-20, 24, label, &rect.ID, labelProps)
	if err != nil {
		return nil, nil, err
	}
	rect.BoundElements = append(rect.BoundElements, &BoundElement{Type: "text", ID: text.ID})
	return rect, text, nil
}

func (s *ExcalidrawScene) addText(x, y, w, h float64, text string, containerID *string, props *ExcalidrawElement) (*ExcalidrawElement, *ExcalidrawElement, error) {
	fs := 16.0
	bl := int(fs * 0.8)
	textEl := &ExcalidrawElement{
		Type: "text", X: x, Y: y, Width: w, Height: h, Text: text, OriginalText: text, ContainerId: containerID,
		StrokeColor: "#1e1e1e", BackgroundColor: "transparent", FillStyle: "solid", StrokeWidth: 1, StrokeStyle: "solid",
		FontSize: fs, FontFamily: 1, TextAlign: "center", VerticalAlign: "middle",
		Baseline: bl, Seed: s.newSeed(), Version: 2, VersionNonce: s.newSeed(), Opacity: 100,
	}
	applyProps(textEl, props)
	if err := s.addElement(textEl); err != nil {
		return nil, nil, err
	}
	return textEl, nil, nil
}

func (s *ExcalidrawScene) addArrow(from, to, label string, dir diagram.EdgeDir, props *ExcalidrawElement) (*ExcalidrawElement, *ExcalidrawElement, error) {
	source := s.getElement(from)
	target := s.getElement(to)
	if source == nil || target == nil {
		return nil, nil, fmt.Errorf("arrow endpoints %s -> %s not in scene", from, to)
	}
	ah := "arrow"
	arrow := &ExcalidrawElement{
		Type:         "arrow",
		StartBinding: &Binding{ElementID: source.ID, Focus: 0.5, Gap: 1},
		EndBinding:   &Binding{ElementID: target.ID, Focus: 0.5, Gap: 1},
		StrokeColor:  "#1e1e1e", BackgroundColor: "transparent", FillStyle: "solid",
		StrokeWidth: 1, StrokeStyle: "solid", Roughness: 0, StrokeSharpness: "round",
		Seed: s.newSeed(), Version: 2, VersionNonce: s.newSeed(), Opacity: 100,
	}
	switch dir {
	case diagram.Forward:
		arrow.EndArrowhead = &ah
	case diagram.Back:
		arrow.StartArrowhead = &ah
	}
	applyProps(arrow, props)

	sx, sy := source.X+source.Width/2, source.Y+source.Height/2
	tx, ty := target.X+target.Width/2, target.Y+target.Height/2
	arrow.X, arrow.Y = sx, sy
	arrow.Width, arrow.Height = math.Abs(tx-sx), math.Abs(ty-sy)
	arrow.Points = [][]float64{{0, 0}, {tx - sx, ty - sy}}

	if err := s.addElement(arrow); err != nil {
		return nil, nil, err
	}
	source.BoundElements = append(source.BoundElements, &BoundElement{Type: "arrow", ID: arrow.ID})
	target.BoundElements = append(target.BoundElements, &BoundElement{Type: "arrow", ID: arrow.ID})
	if label == "" {
		return arrow, nil, nil
	}
	text, _, err := s.addText(sx+(tx-sx)/2, sy+(ty-sy)/2, 0, 0, label, &arrow.ID, nil)
	if err != nil {
		return nil, nil, err
	}
	arrow.BoundElements = append(arrow.BoundElements, &BoundElement{Type: "text", ID: text.ID})
	return arrow, text, nil
}

func (s *ExcalidrawScene) toJSON() (string, error) {
	file := ExcalidrawFile{
		Type: "excalidraw", Version: 2, Source: "https://github.com/moviemate/infradiagram",
		Elements: s.elements, AppState: map[string]any{"viewBackgroundColor": "#FFFFFF"},
		Files:    map[string]any{},
	}
	data, err := json.MarshalIndent(file, "", "  ")
	return string(data), err
}
