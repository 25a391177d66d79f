// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package pixels

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform
// builds. Other platforms need to provide their own window surface.

// Init initializes glfw for display-enabled use.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw. Call as the last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// GLFWCreateWindow is a helper for simple examples and tests: it makes
// a new glfw window of the given size with a WebGPU surface attached.
// resize is called with the new framebuffer size in raw physical
// pixels whenever the window is resized, which is the size the
// [Surface] works in; actualSize is the initial framebuffer size,
// which can differ from size on scaled displays. pollEvents processes
// pending window events and reports false once the window should
// close.
func GLFWCreateWindow(size image.Point, title string, resize *func(size image.Point)) (surface *wgpu.Surface, window *glfw.Window, terminate func(), pollEvents func() bool, actualSize image.Point, err error) {
	if err = Init(); err != nil {
		return
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err = glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return
	}
	surface = Instance().CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	terminate = func() {
		window.Destroy()
		Terminate()
	}
	pollEvents = func() bool {
		if window.ShouldClose() {
			return false
		}
		glfw.PollEvents()
		return true
	}
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if resize != nil {
			(*resize)(image.Point{width, height})
		}
	})
	fbw, fbh := window.GetFramebufferSize()
	actualSize = image.Point{fbw, fbh}
	return
}
