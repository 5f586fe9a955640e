package chart

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// canvas accumulates SVG elements in pixel coordinates.
type canvas struct {
	opts  Options
	w, h  float64
	scale float64 // pixels per point
	buf   strings.Builder

	// plot area
	left, top, right, bottom float64
}

func newCanvas(opts Options) *canvas {
	c := &canvas{
		opts:  opts,
		w:     math.Round(opts.Width * float64(opts.DPI)),
		h:     math.Round(opts.Height * float64(opts.DPI)),
		scale: float64(opts.DPI) / 72,
	}
	c.left = 0.15 * c.w
	c.right = c.w - 0.04*c.w
	c.top = 0.14 * c.h
	c.bottom = c.h - 0.26*c.h
	return c
}

func (c *canvas) open() {
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="Helvetica, Arial, sans-serif">`+"\n",
		num(c.w), num(c.h), num(c.w), num(c.h))
	fmt.Fprintf(&c.buf, `<rect width="100%%" height="100%%" fill="#FFFFFF"/>`+"\n")
}

func (c *canvas) close() string {
	c.buf.WriteString("</svg>\n")
	return c.buf.String()
}

func (c *canvas) pt(v float64) float64 {
	return v * c.scale
}

func (c *canvas) text(x, y float64, size float64, anchor, extra, s string) {
	fmt.Fprintf(&c.buf, `<text x="%s" y="%s" font-size="%s" text-anchor="%s" fill="%s"%s>%s</text>`+"\n",
		num(x), num(y), num(c.pt(size)), anchor, c.opts.Primary, extra, html.EscapeString(s))
}

func (c *canvas) title(s string) {
	if s == "" {
		return
	}
	c.text(c.w/2, c.top/2+c.pt(5), 14, "middle", ` font-weight="bold"`, s)
}

func (c *canvas) axisLabels(xLabel, yLabel string) {
	if xLabel != "" {
		c.text((c.left+c.right)/2, c.h-c.pt(4), 12, "middle", ` font-weight="bold"`, xLabel)
	}
	if yLabel != "" {
		x, y := c.pt(12), (c.top+c.bottom)/2
		c.text(x, y, 12, "middle", fmt.Sprintf(` font-weight="bold" transform="rotate(-90 %s %s)"`, num(x), num(y)), yLabel)
	}
}

// yAxis draws horizontal grid lines with tick labels and returns the value
// to pixel mapping.
func (c *canvas) yAxis(lo, hi float64) func(float64) float64 {
	lo, hi, step := niceRange(lo, hi)
	y := func(v float64) float64 {
		return c.bottom - (v-lo)/(hi-lo)*(c.bottom-c.top)
	}

	for v := lo; v <= hi+step/2; v += step {
		py := y(v)
		fmt.Fprintf(&c.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#000000" stroke-opacity="0.3" stroke-width="1"/>`+"\n",
			num(c.left), num(py), num(c.right), num(py))
		c.text(c.left-c.pt(4), py+c.pt(3), 9, "end", "", tick(v))
	}
	fmt.Fprintf(&c.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
		num(c.left), num(c.top), num(c.left), num(c.bottom), c.opts.Primary)
	return y
}

// xLabels writes category labels rotated 45 degrees under slot centres.
func (c *canvas) xLabels(labels []string, centre func(int) float64) {
	for i, l := range labels {
		x, y := centre(i), c.bottom+c.pt(10)
		c.text(x, y, 9, "end", fmt.Sprintf(` transform="rotate(-45 %s %s)"`, num(x), num(y)), l)
	}
}

func (c *canvas) slots(n int) (width float64, centre func(int) float64) {
	width = (c.right - c.left) / float64(n)
	return width, func(i int) float64 { return c.left + width*(float64(i)+0.5) }
}

func (c *canvas) bar(title, xLabel, yLabel string, labels []string, values []float64) string {
	c.open()
	c.title(title)
	lo, hi := bounds(values)
	y := c.yAxis(lo, hi)
	slot, centre := c.slots(len(values))
	bw := slot * 0.7

	for i, v := range values {
		top, base := y(math.Max(v, 0)), y(math.Min(v, 0))
		fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(centre(i)-bw/2), num(top), num(bw), num(base-top), c.opts.Accent)
	}
	c.xLabels(labels, centre)
	c.axisLabels(xLabel, yLabel)
	return c.close()
}

func (c *canvas) line(title, xLabel, yLabel string, labels []string, values []float64) string {
	c.open()
	c.title(title)
	lo, hi := bounds(values)
	y := c.yAxis(lo, hi)
	_, centre := c.slots(len(values))

	points := make([]string, len(values))
	for i, v := range values {
		points[i] = num(centre(i)) + "," + num(y(v))
	}
	base := y(math.Max(lo, 0))
	if lo < 0 && hi < 0 {
		base = y(hi)
	}
	area := append([]string{num(centre(0)) + "," + num(base)}, points...)
	area = append(area, num(centre(len(values)-1))+","+num(base))

	fmt.Fprintf(&c.buf, `<polygon points="%s" fill="%s" fill-opacity="0.2"/>`+"\n", strings.Join(area, " "), c.opts.Accent)
	fmt.Fprintf(&c.buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		strings.Join(points, " "), c.opts.Primary, num(c.pt(2)))
	for i, v := range values {
		fmt.Fprintf(&c.buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(centre(i)), num(y(v)), num(c.pt(4)), c.opts.Primary)
	}
	c.xLabels(labels, centre)
	c.axisLabels(xLabel, yLabel)
	return c.close()
}

func (c *canvas) pie(title string, counts []count) string {
	c.open()
	c.title(title)

	total := 0
	for _, k := range counts {
		total += k.n
	}

	cx, cy := c.w*0.38, (c.top+c.h)/2
	r := math.Min(c.w*0.3, (c.h-c.top)/2-c.pt(6))

	angle := -math.Pi / 2
	for i, k := range counts {
		share := float64(k.n) / float64(total)
		colour := c.opts.Series[i%len(c.opts.Series)]
		if len(counts) == 1 {
			fmt.Fprintf(&c.buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n", num(cx), num(cy), num(r), colour)
		} else {
			end := angle + share*2*math.Pi
			large := 0
			if share > 0.5 {
				large = 1
			}
			fmt.Fprintf(&c.buf, `<path d="M %s %s L %s %s A %s %s 0 %d 1 %s %s Z" fill="%s" stroke="#FFFFFF" stroke-width="1"/>`+"\n",
				num(cx), num(cy),
				num(cx+r*math.Cos(angle)), num(cy+r*math.Sin(angle)),
				num(r), num(r), large,
				num(cx+r*math.Cos(end)), num(cy+r*math.Sin(end)),
				colour)
			mid := (angle + end) / 2
			c.text(cx+0.65*r*math.Cos(mid), cy+0.65*r*math.Sin(mid)+c.pt(3), 9, "middle", "",
				strconv.FormatFloat(share*100, 'f', 1, 64)+"%")
			angle = end
		}

		// legend
		ly := c.top + c.pt(8) + float64(i)*c.pt(16)
		lx := c.w * 0.74
		fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(lx), num(ly-c.pt(8)), num(c.pt(10)), num(c.pt(10)), colour)
		c.text(lx+c.pt(14), ly, 9, "start", "", k.label)
	}
	return c.close()
}

func (c *canvas) comparison(title string, labels []string, series []Series) string {
	c.open()
	c.title(title)

	var all []float64
	for _, s := range series {
		all = append(all, s.Values...)
	}
	lo, hi := bounds(all)
	y := c.yAxis(lo, hi)
	slot, centre := c.slots(len(labels))
	bw := slot * 0.8 / float64(len(series))

	for si, s := range series {
		colour := c.opts.Series[si%len(c.opts.Series)]
		for i, v := range s.Values {
			x := centre(i) - slot*0.4 + bw*float64(si)
			top, base := y(math.Max(v, 0)), y(math.Min(v, 0))
			fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
				num(x), num(top), num(bw), num(base-top), colour)
		}

		lx := c.right - c.pt(90)
		ly := c.top + c.pt(10) + float64(si)*c.pt(14)
		fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(lx), num(ly-c.pt(8)), num(c.pt(10)), num(c.pt(10)), colour)
		c.text(lx+c.pt(14), ly, 9, "start", "", s.Name)
	}
	c.xLabels(labels, centre)
	c.axisLabels("", "Values")
	return c.close()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = 0, 0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// niceRange widens [lo, hi] to round tick boundaries, about five ticks.
func niceRange(lo, hi float64) (float64, float64, float64) {
	if hi == lo {
		hi = lo + 1
	}
	raw := (hi - lo) / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch f := raw / mag; {
	case f <= 1:
		step = mag
	case f <= 2:
		step = 2 * mag
	case f <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step, step
}

func tick(v float64) string {
	if math.Abs(v) >= 1000 && v == math.Trunc(v) {
		return strconv.FormatFloat(v/1000, 'f', -1, 64) + "k"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
