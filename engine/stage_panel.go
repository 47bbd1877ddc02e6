package engine

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/fx"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/panel"
)

// Panel folder names.
const (
	FolderBloom      = "Bloom"
	FolderOutline    = "Outline"
	FolderColorGrade = "ColorGrade"
	FolderLights     = "Lights"
	FolderStage      = "Stage"
)

// ShadowMapSizes are the shadow map resolutions offered by the panel.
var ShadowMapSizes = []int{512, 1024, 2048, 4096, 8192}

// lightRange bounds the sun position and target controls.
const lightRange = 100

// field reads the component pick selects from a copy of v.
func field[T any](v T, pick func(*T) *float32) float32 {
	return *pick(&v)
}

// initPanel binds the debug panel controls to the passes and lights.
func (s *stage) initPanel() {
	p := s.panel

	p.Folder(FolderBloom).Add(
		panel.Bool("enabled", s.BloomEnabled, s.SetBloomEnabled),
		panel.Float("strength", 0, fx.MaxBloomParameter, 0.01, s.bloomPass.Strength, s.bloomPass.SetStrength),
		panel.Float("radius", 0, fx.MaxBloomParameter, 0.01, s.bloomPass.Radius, s.bloomPass.SetRadius),
		panel.Float("threshold", 0, fx.MaxBloomParameter, 0.01, s.bloomPass.Threshold, s.bloomPass.SetThreshold),
	)

	o := s.outline
	p.Folder(FolderOutline).Add(
		panel.Bool("enabled", s.OutlineEnabled, s.SetOutlineEnabled),
		panel.Color("visibleEdgeColor",
			func() common.Color { return o.Settings().VisibleEdgeColor }, o.SetVisibleEdgeColor),
		panel.Color("hiddenEdgeColor",
			func() common.Color { return o.Settings().HiddenEdgeColor }, o.SetHiddenEdgeColor),
		panel.Float("edgeStrength", 0, fx.MaxEdgeStrength, 0.01,
			func() float32 { return o.Settings().EdgeStrength }, o.SetEdgeStrength),
		panel.Float("edgeGlow", 0, fx.MaxEdgeGlow, 0.01,
			func() float32 { return o.Settings().EdgeGlow }, o.SetEdgeGlow),
		panel.Float("edgeThickness", fx.MinEdgeThickness, fx.MaxEdgeThickness, 0.01,
			func() float32 { return o.Settings().EdgeThickness }, o.SetEdgeThickness),
		panel.Float("pulsePeriod", 0, fx.MaxPulsePeriod, 0.01,
			func() float32 { return o.Settings().PulsePeriod }, o.SetPulsePeriod),
	)

	g := s.colorGrade
	channel := func(get func(common.Color) float32, set func(*common.Color, float32)) (func() float32, func(float32)) {
		return func() float32 { return get(g.Gain()) }, func(v float32) {
			c := g.Gain()
			set(&c, v)
			g.SetGain(c)
		}
	}
	rGet, rSet := channel(func(c common.Color) float32 { return c.R }, func(c *common.Color, v float32) { c.R = v })
	gGet, gSet := channel(func(c common.Color) float32 { return c.G }, func(c *common.Color, v float32) { c.G = v })
	bGet, bSet := channel(func(c common.Color) float32 { return c.B }, func(c *common.Color, v float32) { c.B = v })
	p.Folder(FolderColorGrade).Add(
		panel.Bool("enabled", s.ColorGradeEnabled, s.SetColorGradeEnabled),
		panel.Float("r", 0, fx.MaxColorGain, 0.01, rGet, rSet),
		panel.Float("g", 0, fx.MaxColorGain, 0.01, gGet, gSet),
		panel.Float("b", 0, fx.MaxColorGain, 0.01, bGet, bSet),
	)

	sun := s.sun
	axis := func(get func() common.Vec3, set func(common.Vec3), pick func(*common.Vec3) *float32) (func() float32, func(float32)) {
		return func() float32 { return field(get(), pick) }, func(f float32) {
			v := get()
			*pick(&v) = f
			set(v)
		}
	}
	moveSun := func(v common.Vec3) {
		sun.SetPosition(v)
		s.lightHelper.SetPosition(v)
	}
	x := func(v *common.Vec3) *float32 { return &v.X }
	y := func(v *common.Vec3) *float32 { return &v.Y }
	z := func(v *common.Vec3) *float32 { return &v.Z }
	sunXGet, sunXSet := axis(sun.Position, moveSun, x)
	sunYGet, sunYSet := axis(sun.Position, moveSun, y)
	sunZGet, sunZSet := axis(sun.Position, moveSun, z)
	targetXGet, targetXSet := axis(sun.Target, sun.SetTarget, x)
	targetYGet, targetYSet := axis(sun.Target, sun.SetTarget, y)
	targetZGet, targetZSet := axis(sun.Target, sun.SetTarget, z)

	shadow := func(pick func(*light.ShadowSettings) *float32) (func() float32, func(float32)) {
		return func() float32 { return field(sun.Shadow(), pick) }, func(f float32) {
			v := sun.Shadow()
			*pick(&v) = f
			sun.SetShadow(v)
		}
	}
	nearGet, nearSet := shadow(func(v *light.ShadowSettings) *float32 { return &v.Near })
	farGet, farSet := shadow(func(v *light.ShadowSettings) *float32 { return &v.Far })
	extentGet, extentSet := shadow(func(v *light.ShadowSettings) *float32 { return &v.HalfExtent })
	biasGet, biasSet := shadow(func(v *light.ShadowSettings) *float32 { return &v.Bias })

	sizes := make([]string, len(ShadowMapSizes))
	for i, n := range ShadowMapSizes {
		sizes[i] = strconv.Itoa(n)
	}

	p.Folder(FolderLights).Add(
		panel.Bool("helper", s.lightHelper.Visible, s.SetLightHelperVisible),
		panel.Bool("shadows", s.renderer.ShadowsEnabled, s.renderer.SetShadowsEnabled),
		panel.Color("sunColor", sun.Color, sun.SetColor),
		panel.Float("sunIntensity", 0, 5, 0.1, sun.Intensity, sun.SetIntensity),
		panel.Float("ambientIntensity", 0, 5, 0.1, s.ambient.Intensity, s.ambient.SetIntensity),
		panel.Float("sunX", -lightRange, lightRange, 0.1, sunXGet, sunXSet),
		panel.Float("sunY", -lightRange, lightRange, 0.1, sunYGet, sunYSet),
		panel.Float("sunZ", -lightRange, lightRange, 0.1, sunZGet, sunZSet),
		panel.Float("targetX", -lightRange, lightRange, 0.1, targetXGet, targetXSet),
		panel.Float("targetY", -lightRange, lightRange, 0.1, targetYGet, targetYSet),
		panel.Float("targetZ", -lightRange, lightRange, 0.1, targetZGet, targetZSet),
		panel.Float("shadowNear", 0.01, 50, 0.01, nearGet, nearSet),
		panel.Float("shadowFar", 1, 2000, 1, farGet, farSet),
		panel.Float("shadowHalfExtent", 1, 500, 1, extentGet, extentSet),
		panel.Float("shadowBias", 0, 0.05, 0.0001, biasGet, biasSet),
		panel.Enum("shadowMapSize", sizes,
			func() string { return strconv.Itoa(sun.Shadow().Resolution) },
			func(v string) {
				n, err := strconv.Atoi(v)
				if err != nil {
					return
				}
				settings := sun.Shadow()
				settings.Resolution = n
				sun.SetShadow(settings)
			}),
	)

	if s.presetPath != "" {
		p.Folder(FolderStage).Add(
			panel.Action("savePreset", func() { s.handleKey(common.KeyP) }),
			panel.Action("loadPreset", func() {
				if err := p.LoadFile(s.presetPath); err != nil {
					common.Logger().Warn("preset load failed", "path", s.presetPath, "error", err)
				}
			}),
		)
	}
}
