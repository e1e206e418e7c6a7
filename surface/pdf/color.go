// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pdf

import (
	"image/color"

	"github.com/gogpu/prismal"
)

func toNRGBA(c prismal.HSBA) color.NRGBA {
	return color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
}
