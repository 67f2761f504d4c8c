package render

import (
	"image/color"
	"strings"

	"github.com/valorem-chem/milabel/pkg/field"
	"github.com/valorem-chem/milabel/pkg/fonts"
	"github.com/valorem-chem/milabel/pkg/label"
	"github.com/valorem-chem/milabel/pkg/scale"
	"github.com/valorem-chem/milabel/pkg/render/sink"
	"github.com/valorem-chem/milabel/pkg/symbology"
	"github.com/valorem-chem/milabel/pkg/units"
)

// Layout anchors in millimeters at scale 1.0. Every anchor is multiplied by
// the uniform scale factor, so the proportions hold from 2"x1" stock up to
// A4.
const (
	marginMM        = 5    // content margin inside the label edge
	headerGapMM     = 3    // below each header line
	ruleGapMM       = 2    // below the header rule
	sepGapMM        = 3    // below a section separator
	code39MaxWMM    = 50   // widest the identifier symbol may grow
	code128MaxWMM   = 55   // widest a lot/date symbol may grow
	moduleWidthMM   = 0.33 // nominal narrow element width
	matrixInsetMM   = 2    // matrix inset from the right edge
	unitColMM       = 55   // unit-of-issue column offset
	expiryColMM     = 70   // expiry barcode column offset
	hazardBoxMM     = 8    // hazard badge side
	col1WidthMM     = 45   // table caption column width
	cellPadMM       = 2    // horizontal cell padding
	rowPadMM        = 4    // vertical row padding
	cutDashMM       = 2    // cut line dash length
	framePadMM      = 0.5  // frame overhang beyond the content edge
	natoBoxPadMM    = 0.4  // padding around the code inside its box
)

// cutColor is the light gray of the cut guide outside the label area.
var cutColor = color.RGBA{R: 180, G: 180, B: 180, A: 255}

type composer struct {
	c   sink.Canvas
	fs  *fonts.Set
	m   scale.Metrics
	rec *label.Record

	bleedPx  float64
	labelW   float64
	labelH   float64
	xLeft    float64
	xRight   float64
	framePad float64
	y        float64
}

// Compose draws a record onto a canvas in a single downward pass. The
// canvas must have been sized for the label plus bleed at the metrics' DPI.
func Compose(rec *label.Record, size scale.Size, m scale.Metrics, bleedMM float64, c sink.Canvas, fs *fonts.Set) error {
	cp := &composer{
		c:       c,
		fs:      fs,
		m:       m,
		rec:     rec,
		bleedPx: float64(units.ToPixels(bleedMM, m.DPI)),
		labelW:  float64(units.ToPixels(size.WidthMM, m.DPI)),
		labelH:  float64(units.ToPixels(size.HeightMM, m.DPI)),
	}

	margin := cp.px(marginMM)
	cp.xLeft = cp.bleedPx + margin
	cp.xRight = cp.bleedPx + cp.labelW - margin
	cp.framePad = cp.px(framePadMM)
	cp.y = cp.bleedPx + margin

	if bleedMM > 0 {
		cp.cutLine()
	}
	cp.header()

	borderTop := cp.y
	borderBottom := cp.bleedPx + cp.labelH - margin
	cp.c.StrokeRect(cp.xLeft-cp.framePad, borderTop,
		(cp.xRight+cp.framePad)-(cp.xLeft-cp.framePad), borderBottom-borderTop,
		cp.stroke(0.13), sink.Black)
	cp.rule(0.13)
	cp.y += cp.px(ruleGapMM)

	if err := cp.identifierRow(); err != nil {
		return err
	}
	cp.separator()
	if err := cp.lotRow(); err != nil {
		return err
	}
	cp.separator()
	cp.table()
	cp.safety()
	cp.contractor()
	return nil
}

// px converts scaled millimeters to canvas pixels.
func (cp *composer) px(mm float64) float64 {
	return float64(units.ToPixels(mm*cp.m.Factor, cp.m.DPI))
}

// stroke converts a line weight in millimeters to pixels with a 1px floor.
func (cp *composer) stroke(mm float64) float64 {
	w := cp.px(mm)
	if w < 1 {
		return 1
	}
	return w
}

// text draws caption-style text positioned by its top edge and returns the
// advance width.
func (cp *composer) text(s string, x, top float64, st fonts.Style) float64 {
	cp.c.Text(s, x, top+float64(st.Ascent()), st, sink.Black)
	return float64(st.Measure(s))
}

// rule draws a full-width horizontal line at the cursor.
func (cp *composer) rule(weightMM float64) {
	cp.c.Line(cp.xLeft-cp.framePad, cp.y, cp.xRight+cp.framePad, cp.y,
		cp.stroke(weightMM), sink.Black)
}

func (cp *composer) separator() {
	cp.rule(0.08)
	cp.y += cp.px(sepGapMM)
}

// cutLine draws the dashed gray guide along the label boundary inside the
// bleed area.
func (cp *composer) cutLine() {
	dash := []float64{cp.px(cutDashMM), cp.px(cutDashMM)}
	w := cp.stroke(0.08)
	x0, y0 := cp.bleedPx, cp.bleedPx
	x1, y1 := cp.bleedPx+cp.labelW, cp.bleedPx+cp.labelH
	cp.c.DashedLine(x0, y0, x1, y0, w, dash, cutColor)
	cp.c.DashedLine(x0, y1, x1, y1, w, dash, cutColor)
	cp.c.DashedLine(x0, y0, x0, y1, w, dash, cutColor)
	cp.c.DashedLine(x1, y0, x1, y1, w, dash, cutColor)
}

// header centers the product name and the primary identifier over the full
// label width.
func (cp *composer) header() {
	for _, line := range []struct {
		s  string
		st fonts.Style
	}{
		{cp.rec.ProductName, cp.fs.Large},
		{cp.rec.NSN, cp.fs.Header},
	} {
		w := float64(line.st.Measure(line.s))
		x := cp.bleedPx + (cp.labelW-w)/2
		cp.text(line.s, x, cp.y, line.st)
		cp.y += float64(line.st.Height()) + cp.px(headerGapMM)
	}
}

// linearWidth computes the target pixel width of a linear symbol from its
// framed module count at the nominal narrow element width, clamped to the
// column's maximum.
func (cp *composer) linearWidth(bm *symbology.Bitmap, maxWMM float64) int {
	modPx := units.ToPixels(moduleWidthMM*cp.m.Factor, cp.m.DPI)
	if modPx < 1 {
		modPx = 1
	}
	w := bm.Image().Bounds().Dx() * modPx
	if maxW := units.ToPixels(maxWMM*cp.m.Factor, cp.m.DPI); w > maxW {
		w = maxW
	}
	return w
}

// identifierRow draws the Code 39 identifier symbol, the unit of issue, the
// hazard badge, the Data Matrix, and the identifier echo line.
func (cp *composer) identifierRow() error {
	bm, err := symbology.Code39(cp.rec.NIIN)
	if err != nil {
		return err
	}
	img := symbology.ScaleLinear(bm, cp.linearWidth(bm, code39MaxWMM), cp.m.BarcodeHeightPx)
	cp.c.PasteBitmap(img, int(cp.xLeft), int(cp.y))

	top := cp.y
	unitX := cp.xLeft + cp.px(unitColMM)
	captionW := cp.text("Unit: ", unitX, top, cp.fs.Small)
	valueW := cp.text(cp.rec.UnitOfIssue, unitX+captionW, top, cp.fs.Data)

	if cp.rec.HazardCode != label.Placeholder {
		cp.hazardBadge(unitX+captionW+valueW+cp.px(5), top)
	}

	dm, err := symbology.DataMatrix(cp.rec.MatrixGroups())
	if err != nil {
		return err
	}
	side := cp.m.MatrixSidePx
	matrix := symbology.ScaleMatrix(dm, side)
	cp.c.PasteBitmap(matrix, int(cp.xRight-float64(side)-cp.px(matrixInsetMM)), int(cp.y))

	cp.y += float64(cp.m.BarcodeHeightPx) + cp.px(headerGapMM)

	captionW = cp.text("NIIN: ", cp.xLeft, cp.y, cp.fs.Small)
	cp.text(cp.rec.NIIN, cp.xLeft+captionW, cp.y, cp.fs.Data)
	cp.y += float64(cp.fs.Data.Height()) + cp.px(5)
	return nil
}

// hazardBadge draws the HAZARD caption over a filled square with the hazard
// class in inverse video.
func (cp *composer) hazardBadge(x, top float64) {
	cp.text("HAZARD", x, top, cp.fs.Tiny)
	boxY := top + float64(cp.fs.Tiny.Height()) + cp.px(1)
	box := cp.px(hazardBoxMM)
	cp.c.FillRect(x, boxY, box, box, sink.Black)

	code := cp.rec.HazardCode
	st := cp.fs.Data
	tx := x + (box-float64(st.Measure(code)))/2
	baseline := boxY + (box-float64(st.Height()))/2 + float64(st.Ascent())
	cp.c.Text(code, tx, baseline, st, sink.White)
}

// lotRow draws the lot and expiry Code 128 symbols with their caption line.
func (cp *composer) lotRow() error {
	lotBM, err := symbology.Code128(cp.rec.LotID)
	if err != nil {
		return err
	}
	lot := symbology.ScaleLinear(lotBM, cp.linearWidth(lotBM, code128MaxWMM), cp.m.BarcodeHeightPx)
	cp.c.PasteBitmap(lot, int(cp.xLeft), int(cp.y))

	expiryBM, err := symbology.Code128(field.FormatYYMMDD(cp.rec.Expiry))
	if err != nil {
		return err
	}
	expiry := symbology.ScaleLinear(expiryBM, cp.linearWidth(expiryBM, code128MaxWMM), cp.m.BarcodeHeightPx)
	expiryX := cp.xLeft + cp.px(expiryColMM)
	cp.c.PasteBitmap(expiry, int(expiryX), int(cp.y))

	cp.y += float64(cp.m.BarcodeHeightPx) + cp.px(2)

	managed := "N"
	if cp.rec.BatchLotManaged {
		managed = "Y"
	}
	captionW := cp.text("B/L: ", cp.xLeft, cp.y, cp.fs.Small)
	cp.text(managed, cp.xLeft+captionW, cp.y, cp.fs.Data)

	captionW = cp.text("Use by Date: ", expiryX, cp.y, cp.fs.Small)
	cp.text(field.FormatDayMonthYear(cp.rec.Expiry), expiryX+captionW, cp.y, cp.fs.Data)

	cp.y += float64(cp.fs.Data.Height()) + cp.px(rowPadMM)
	return nil
}

// table draws the fixed-attribute rows.
func (cp *composer) table() {
	rows := []struct {
		caption string
		value   string
		nato    bool
	}{
		{caption: "NATO Code / JSD:", nato: true},
		{caption: "Specification:", value: cp.rec.Specification},
		{caption: "Batch Lot No.", value: cp.rec.LotID},
		{caption: "Date of Manufacture", value: field.FormatMonthYear(cp.rec.ManufactureDate)},
		{caption: "Capacity or Net Weight", value: cp.rec.CapacityWeight},
		{caption: "Re-Test Date NATO/JSD", value: field.FormatDayMonthYear(cp.rec.Requalification)},
		{caption: "Test Report No.", value: cp.rec.TestReport},
	}

	rowH := float64(cp.fs.Data.Height()) + cp.px(rowPadMM)
	col1 := cp.px(col1WidthMM)
	x0 := cp.xLeft - cp.framePad
	width := (cp.xRight + cp.framePad) - x0

	for _, row := range rows {
		cp.c.StrokeRect(x0, cp.y, width, rowH, cp.stroke(0.04), sink.Black)
		cp.c.Line(cp.xLeft+col1, cp.y, cp.xLeft+col1, cp.y+rowH, cp.stroke(0.04), sink.Black)

		textTop := cp.y + cp.px(1)
		cp.text(row.caption, cp.xLeft, textTop, cp.fs.Small)

		valueX := cp.xLeft + col1 + cp.px(cellPadMM)
		if row.nato {
			cp.natoCell(valueX, textTop)
		} else {
			cp.text(row.value, valueX, textTop, cp.fs.Data)
		}
		cp.y += rowH
	}
	cp.y += cp.px(2)
}

// natoCell renders the NATO code and JSD reference inline. A real code gets
// a bordered box measured around its drawn position; a placeholder renders
// as a bare dash.
func (cp *composer) natoCell(x, textTop float64) {
	st := cp.fs.Data
	cur := x

	if code := cp.rec.NATOCode; code != label.Placeholder {
		pad := cp.px(natoBoxPadMM)
		if pad < 1 {
			pad = 1
		}
		textX := cur + pad
		w := float64(st.Measure(code))
		h := float64(st.Height())
		cp.c.StrokeRect(textX-pad, textTop-pad, w+2*pad, h+2*pad, cp.stroke(0.13), sink.Black)
		cp.text(code, textX, textTop, st)
		cur = textX + w + pad + cp.px(cellPadMM)
	} else {
		cur += cp.text(label.Placeholder, cur, textTop, st) + cp.px(cellPadMM)
	}

	cur += cp.text(" | ", cur, textTop, st)
	cp.text(cp.rec.JSDReference, cur, textTop, st)
}

// safety draws the safety/movement markings block. The block always
// renders; an empty field shows its caption and the placeholder so an
// inspector can tell "none" from "missing".
func (cp *composer) safety() {
	h := float64(cp.fs.Small.Height()) + cp.px(rowPadMM)
	x0 := cp.xLeft - cp.framePad
	cp.c.StrokeRect(x0, cp.y, (cp.xRight+cp.framePad)-x0, h, cp.stroke(0.04), sink.Black)

	textTop := cp.y + cp.px(1)
	w := cp.text("Safety / Movement Markings: ", cp.xLeft, textTop, cp.fs.Small)
	cp.text(cp.rec.SafetyMarkings, cp.xLeft+w, textTop, cp.fs.Data)
	cp.y += h + cp.px(2)
}

// contractor draws the multi-line contractor details box when present.
func (cp *composer) contractor() {
	if cp.rec.ContractorDetails == label.Placeholder {
		return
	}
	lines := strings.Split(cp.rec.ContractorDetails, "|")
	lineH := float64(cp.fs.Small.Height()) + cp.px(1)
	boxH := float64(len(lines))*lineH + cp.px(sepGapMM)

	x0 := cp.xLeft - cp.framePad
	cp.c.StrokeRect(x0, cp.y, (cp.xRight+cp.framePad)-x0, boxH, cp.stroke(0.04), sink.Black)

	textTop := cp.y + cp.px(1)
	for _, line := range lines {
		cp.text(strings.TrimSpace(line), cp.xLeft, textTop, cp.fs.Small)
		textTop += lineH
	}
	cp.y += boxH
}
