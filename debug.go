// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug
// +build debug

package ipbdd

import (
	"log"
	"os"
)

const debugLogging = true

func init() {
	log.SetOutput(os.Stdout)
}
