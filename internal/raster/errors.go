package raster

import "errors"

var (
	ErrInvalidEnum      = errors.New("raster: invalid enum")
	ErrInvalidValue     = errors.New("raster: invalid value")
	ErrInvalidOperation = errors.New("raster: invalid operation")
	ErrNoBuffer         = errors.New("raster: no buffer bound")
	ErrNoProgram        = errors.New("raster: no program in use")
	ErrNoUniform        = errors.New("raster: no such uniform")
	ErrCompile          = errors.New("raster: shader compile failed")
	ErrLink             = errors.New("raster: program link failed")
)
