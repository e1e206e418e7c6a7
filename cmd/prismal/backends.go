package main

import (
	_ "github.com/gogpu/prismal/surface/braille"
	_ "github.com/gogpu/prismal/surface/pdf"
	_ "github.com/gogpu/prismal/surface/raster"
	_ "github.com/gogpu/prismal/surface/svg"
)
