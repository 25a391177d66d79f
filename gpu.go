// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	"log"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	theInstance  *wgpu.Instance
	instanceOnce sync.Once
)

// Instance returns the shared WebGPU instance, creating it on first use.
func Instance() *wgpu.Instance {
	instanceOnce.Do(func() {
		theInstance = wgpu.CreateInstance(nil)
	})
	return theInstance
}

// GPU represents the physical GPU hardware.
type GPU struct {
	// GPU is the WebGPU adapter.
	GPU *wgpu.Adapter

	// Limits are the supported limits of the adapter.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with an adapter compatible with the given
// surface, which can be nil for headless (no display) use.
func NewGPU(sf *wgpu.Surface) (*GPU, error) {
	gp := &GPU{}
	opts := &wgpu.RequestAdapterOptions{
		CompatibleSurface: sf,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	}
	ad, err := Instance().RequestAdapter(opts)
	if err != nil || ad == nil {
		return nil, errors.Log(errors.Join(ErrNoAdapter, err))
	}
	gp.GPU = ad
	gp.Limits = ad.GetLimits()
	if Debug {
		log.Printf("pixels: adapter max texture size: %d\n",
			gp.Limits.Limits.MaxTextureDimension2D)
	}
	return gp, nil
}

// NoDisplayGPU returns a GPU and Device with no surface attached,
// for offscreen rendering and testing.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := NewGPU(nil)
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}

// Release releases the adapter. Call after all surfaces and devices
// have been released.
func (gp *GPU) Release() {
	if gp.GPU == nil {
		return
	}
	gp.GPU.Release()
	gp.GPU = nil
}

// Device holds the WebGPU device and its queue. Each rendering target
// owns one Device exclusively.
type Device struct {
	// Device is the logical GPU device.
	Device *wgpu.Device

	// Queue is the command submission queue for the device.
	Queue *wgpu.Queue
}

// NewDevice requests a new device from the GPU adapter.
func NewDevice(gp *GPU) (*Device, error) {
	wdev, err := gp.GPU.RequestDevice(nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	return &Device{Device: wdev, Queue: wdev.GetQueue()}, nil
}

// WaitDone blocks until all submitted GPU work has completed.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release releases the device. It must not be used after this.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
