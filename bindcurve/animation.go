package bindcurve

import (
	"bytes"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// WriteSweepAnimation renders the accumulated curves into an MJPEG movie,
// one frame per curve prefix, so each frame shows one more trace than the
// last. Axis bounds stay fixed across frames.
func (bc *BindingCurve) WriteSweepAnimation(fileName string, frameRate int32, option ...PlotOption) (err error) {
	opts := plotOptionNew(option...)

	widthPx := int32(opts.style.FigureWidth * float64(opts.style.DPI))
	heightPx := int32(opts.style.FigureHeight * float64(opts.style.DPI))

	aw, err := mjpeg.New(fileName, widthPx, heightPx, frameRate)
	if err != nil {
		return
	}

	defer func() {
		closeErr := aw.Close()
		if err == nil {
			err = closeErr
		}
	}()

	jpegOptions := &jpeg.Options{Quality: 75}

	for end := 1; end <= len(bc.curves); end++ {
		p, rErr := bc.renderCurves(bc.curves[:end], opts)
		if rErr != nil {
			err = rErr

			return
		}

		c := vgimg.NewWith(
			vgimg.UseWH(vg.Length(opts.style.FigureWidth)*vg.Inch, vg.Length(opts.style.FigureHeight)*vg.Inch),
			vgimg.UseDPI(opts.style.DPI))

		p.Draw(draw.New(c))

		var buf bytes.Buffer

		err = jpeg.Encode(&buf, c.Image(), jpegOptions)
		if err != nil {
			return
		}

		err = aw.AddFrame(buf.Bytes())
		if err != nil {
			return
		}
	}

	return
}
