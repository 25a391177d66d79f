// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pixels

import (
	_ "embed"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/scale.wgsl
var scaleShader string

// RenderStage is a post-processing stage applied after the frame
// texture has been scaled onto the target. Stages run in order, each
// reading the previous output from src and drawing into dst.
type RenderStage interface {
	// Render encodes this stage into cmd, reading src and drawing
	// the full dst.
	Render(cmd *wgpu.CommandEncoder, src, dst *wgpu.TextureView) error

	// Release releases the GPU resources of the stage.
	Release()
}

// scalePipeline is the texture + sampler fullscreen-triangle pipeline
// shared by the scaler and by shader stages.
type scalePipeline struct {
	device   *Device
	pipeline *wgpu.RenderPipeline
	layout   *wgpu.BindGroupLayout
	sampler  *wgpu.Sampler
}

func newScalePipeline(dev *Device, wgsl, label string, format wgpu.TextureFormat, filter wgpu.FilterMode) (*scalePipeline, error) {
	sp := &scalePipeline{device: dev}
	module, err := dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	defer module.Release()

	sp.sampler, err = dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		sp.release()
		return nil, errors.Log(err)
	}
	sp.layout, err = dev.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		sp.release()
		return nil, errors.Log(err)
	}
	plout, err := dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: []*wgpu.BindGroupLayout{sp.layout},
	})
	if err != nil {
		sp.release()
		return nil, errors.Log(err)
	}
	defer plout.Release()

	sp.pipeline, err = dev.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: plout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		sp.release()
		return nil, errors.Log(err)
	}
	return sp, nil
}

// bindGroup returns a bind group binding the given view and the
// pipeline sampler.
func (sp *scalePipeline) bindGroup(view *wgpu.TextureView, label string) (*wgpu.BindGroup, error) {
	bg, err := sp.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: sp.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sp.sampler},
		},
	})
	if err != nil {
		return nil, errors.Log(err)
	}
	return bg, nil
}

func (sp *scalePipeline) release() {
	if sp.pipeline != nil {
		sp.pipeline.Release()
		sp.pipeline = nil
	}
	if sp.layout != nil {
		sp.layout.Release()
		sp.layout = nil
	}
	if sp.sampler != nil {
		sp.sampler.Release()
		sp.sampler = nil
	}
}

// scaler clears the target to the clear color and draws the frame
// texture into the centered, aspect-preserving clip rectangle, using
// a viewport-restricted fullscreen triangle. With post-processing
// stages present, the scaled image is rendered into an intermediate
// texture and the stage chain ends on the target.
type scaler struct {
	device *Device
	format wgpu.TextureFormat
	pipe   *scalePipeline
	clear  wgpu.Color
	geom   viewGeometry

	// frameView is the current frame texture view; bind is the cached
	// bind group built on it, dropped when the view changes.
	frameView *wgpu.TextureView
	bind      *wgpu.BindGroup

	stages []RenderStage

	// mids are target-sized ping-pong textures for the stage chain.
	mids [2]*RenderTexture
}

func newScaler(dev *Device, format wgpu.TextureFormat, opts *Options) (*scaler, error) {
	sc := &scaler{device: dev, format: format, clear: opts.clearValue()}
	pipe, err := newScalePipeline(dev, scaleShader, "pixels.scaler", format, opts.Filter.Mode())
	if err != nil {
		return nil, err
	}
	sc.pipe = pipe
	return sc, nil
}

// setFrameView sets the frame texture view to sample from, dropping
// the bind group built on the previous view.
func (sc *scaler) setFrameView(view *wgpu.TextureView) {
	if sc.frameView == view {
		return
	}
	sc.frameView = view
	if sc.bind != nil {
		sc.bind.Release()
		sc.bind = nil
	}
}

func (sc *scaler) addStage(st RenderStage) {
	sc.stages = append(sc.stages, st)
}

// ensureMids sizes the intermediate stage textures to the target size.
func (sc *scaler) ensureMids(size image.Point) error {
	n := 0
	if len(sc.stages) > 0 {
		n = 1
	}
	if len(sc.stages) > 1 {
		n = 2
	}
	for i := range n {
		if sc.mids[i] == nil {
			mid := &RenderTexture{device: sc.device}
			mid.format = TextureFormat{Size: size, Format: sc.format}
			if err := mid.configFrame(); err != nil {
				return err
			}
			sc.mids[i] = mid
		} else {
			sc.mids[i].SetSize(size)
		}
	}
	return nil
}

// render encodes the scale pass and any stages into cmd, drawing into
// target of size surfSize, from a frame texture of size bufSize.
func (sc *scaler) render(cmd *wgpu.CommandEncoder, target *wgpu.TextureView, surfSize, bufSize image.Point) error {
	if sc.geom.surfSize != surfSize || sc.geom.bufSize != bufSize {
		sc.geom = computeGeometry(surfSize, bufSize)
	}
	if sc.bind == nil {
		bg, err := sc.pipe.bindGroup(sc.frameView, "pixels.scaler")
		if err != nil {
			return err
		}
		sc.bind = bg
	}
	if err := sc.ensureMids(surfSize); err != nil {
		return err
	}
	dst := target
	if len(sc.stages) > 0 {
		dst = sc.mids[0].view
	}
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "pixels.scaler",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       dst,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: sc.clear,
			StoreOp:    wgpu.StoreOpStore,
		}},
	})
	clip := sc.geom.clip
	if sz := clip.Size(); sz.X >= 1 && sz.Y >= 1 {
		rp.SetViewport(clip.Min.X, clip.Min.Y, sz.X, sz.Y, 0, 1)
		sr := sc.geom.clipBounds()
		rp.SetScissorRect(uint32(sr.Min.X), uint32(sr.Min.Y), uint32(sr.Dx()), uint32(sr.Dy()))
		rp.SetPipeline(sc.pipe.pipeline)
		rp.SetBindGroup(0, sc.bind, nil)
		rp.Draw(3, 1, 0, 0)
	}
	rp.End()
	rp.Release()

	for i, st := range sc.stages {
		src := sc.mids[i%2].view
		dst := target
		if i < len(sc.stages)-1 {
			dst = sc.mids[(i+1)%2].view
		}
		if err := st.Render(cmd, src, dst); err != nil {
			return err
		}
	}
	return nil
}

func (sc *scaler) release() {
	if sc.bind != nil {
		sc.bind.Release()
		sc.bind = nil
	}
	for _, st := range sc.stages {
		st.Release()
	}
	sc.stages = nil
	for i, mid := range sc.mids {
		if mid != nil {
			mid.Release()
			sc.mids[i] = nil
		}
	}
	if sc.pipe != nil {
		sc.pipe.release()
		sc.pipe = nil
	}
}

// ShaderStage is a [RenderStage] built from caller WGSL source. The
// shader must define vs_main and fs_main entry points and may bind the
// previous stage output at @group(0) @binding(0) (texture_2d<f32>)
// with a sampler at @group(0) @binding(1); see shaders/scale.wgsl for
// the baseline version.
type ShaderStage struct {
	pipe *scalePipeline
}

// NewShaderStage compiles the given WGSL source into a stage rendering
// to targets of the given format.
func NewShaderStage(dev *Device, wgsl string, format wgpu.TextureFormat) (*ShaderStage, error) {
	pipe, err := newScalePipeline(dev, wgsl, "pixels.ShaderStage", format, wgpu.FilterModeNearest)
	if err != nil {
		return nil, err
	}
	return &ShaderStage{pipe: pipe}, nil
}

// Render encodes the stage: one fullscreen triangle reading src and
// covering dst.
func (ss *ShaderStage) Render(cmd *wgpu.CommandEncoder, src, dst *wgpu.TextureView) error {
	bg, err := ss.pipe.bindGroup(src, "pixels.ShaderStage")
	if err != nil {
		return err
	}
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "pixels.ShaderStage",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       dst,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: wgpu.Color{},
			StoreOp:    wgpu.StoreOpStore,
		}},
	})
	rp.SetPipeline(ss.pipe.pipeline)
	rp.SetBindGroup(0, bg, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()
	rp.Release()
	bg.Release()
	return nil
}

// Release releases the stage pipeline.
func (ss *ShaderStage) Release() {
	if ss.pipe != nil {
		ss.pipe.release()
		ss.pipe = nil
	}
}
