// Command vkinfo loads the Vulkan driver and prints what it reports: instance
// layers and extensions, physical devices, queue families and memory heaps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andewx/vkobj"
	"github.com/andewx/vkobj/loader"
	gu "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

var (
	driver     = flag.String("driver", "", "path of the driver library, overrides the default search")
	extensions = flag.Bool("extensions", true, "list instance and device extensions")
	features   = flag.Bool("features", false, "list supported device features")
)

func main() {
	flag.Parse()

	cfg := loader.DefaultConfig()
	if *driver != "" {
		cfg.Candidates = []string{*driver}
	}
	lib, err := loader.Open(cfg)
	orExit(err)
	defer lib.Close()

	if err := run(os.Stdout, lib, *extensions, *features); err != nil {
		orExit(err)
	}
}

func orExit(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "vkinfo:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, d vkobj.Dispatcher, showExtensions, showFeatures bool) error {
	layers, err := vkobj.InstanceLayers(d)
	if err != nil {
		return err
	}
	list(w, "Layers", layerLines(layers))

	if showExtensions {
		exts, err := vkobj.InstanceExtensions(d, "")
		if err != nil {
			return err
		}
		list(w, "Extensions", extensionLines(exts))
	}

	inst, err := vkobj.CreateInstance(d, &vkobj.InstanceCreateInfo{
		Application: &vkobj.ApplicationInfo{
			ApplicationName:    "vkinfo",
			ApplicationVersion: vkobj.DefaultVulkanAppVersion,
			EngineName:         "vkobj",
			EngineVersion:      vkobj.DefaultVulkanAppVersion,
			APIVersion:         vkobj.DefaultVulkanAPIVersion,
		},
	}, nil)
	if err != nil {
		return err
	}
	defer inst.Destroy()

	gpus, err := inst.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}
	for _, gpu := range gpus {
		if err := showPhysicalDevice(w, gpu, showExtensions, showFeatures); err != nil {
			return err
		}
	}
	return nil
}

func showPhysicalDevice(w io.Writer, gpu *vkobj.PhysicalDevice, showExtensions, showFeatures bool) error {
	props := gpu.Properties()
	fmt.Fprintf(w, "\n%s\n", props.DeviceName)
	fmt.Fprintf(w, "-----------------------------\n")
	fmt.Fprintf(w, "\tAPI %d.%d.%d, driver %x, vendor %04x, device %04x, %s\n",
		vkobj.VersionMajor(props.APIVersion), vkobj.VersionMinor(props.APIVersion), vkobj.VersionPatch(props.APIVersion),
		props.DriverVersion, props.VendorID, props.DeviceID, deviceType(props.DeviceType))

	fmt.Fprintf(w, "\n\tQueue Families\n")
	fmt.Fprintf(w, "\t\tIdx\tCount\tFlags\n")
	for i, q := range gpu.QueueFamilyProperties() {
		fmt.Fprintf(w, "\t\t%d\t%d\t%s\n", i, q.QueueCount, queueFlags(q.QueueFlags))
	}

	mem := gpu.MemoryProperties()
	fmt.Fprintf(w, "\n\tMemory Types\n")
	fmt.Fprintf(w, "\t\tHeapIdx\tFlags\n")
	for _, t := range mem.Types {
		fmt.Fprintf(w, "\t\t%d\t%s\n", t.HeapIndex, memoryPropertyFlags(t.PropertyFlags))
	}
	fmt.Fprintf(w, "\n\tHeaps\n")
	for _, h := range mem.Heaps {
		fmt.Fprintf(w, "\t\t%s\t%s\n", gu.BytesSize(float64(h.Size)), memoryHeapFlags(h.Flags))
	}

	if showFeatures {
		fmt.Fprintf(w, "\n\tFeatures\n")
		set := gpu.Features()
		for f := vkobj.FeatureRobustBufferAccess; f <= vkobj.FeatureInheritedQueries; f++ {
			fmt.Fprintf(w, "\t\t%d %v\n", f, set.Has(f))
		}
	}

	if showExtensions {
		exts, err := gpu.Extensions("")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n\tSupported Extensions\n")
		for _, line := range extensionLines(exts) {
			fmt.Fprintf(w, "\t\t%s\n", line)
		}
	}
	return nil
}

func list(w io.Writer, title string, data []string) {
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "-----------------------------\n")
	for _, d := range data {
		fmt.Fprintf(w, "\t%s\n", d)
	}
	fmt.Fprintf(w, "\n")
}

func layerLines(layers []vkobj.LayerProperties) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = fmt.Sprintf("%s (%d) %s", l.Name, l.ImplementationVersion, l.Description)
	}
	return out
}

func extensionLines(exts []vkobj.ExtensionProperties) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = fmt.Sprintf("%s (%d)", e.Name, e.SpecVersion)
	}
	return out
}

func deviceType(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	default:
		return "other"
	}
}

type flagName struct {
	bit  uint32
	name string
}

func flagString(f uint32, names []flagName) string {
	var parts []string
	for _, n := range names {
		if f&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return fmt.Sprintf("%s (%x)", strings.Join(parts, "|"), f)
}

func queueFlags(f vk.QueueFlags) string {
	return flagString(uint32(f), []flagName{
		{uint32(vk.QueueGraphicsBit), "Graphics"},
		{uint32(vk.QueueComputeBit), "Compute"},
		{uint32(vk.QueueTransferBit), "Transfer"},
		{uint32(vk.QueueSparseBindingBit), "SparseBinding"},
	})
}

func memoryPropertyFlags(f vk.MemoryPropertyFlags) string {
	return flagString(uint32(f), []flagName{
		{uint32(vk.MemoryPropertyDeviceLocalBit), "DeviceLocal"},
		{uint32(vk.MemoryPropertyHostVisibleBit), "HostVisible"},
		{uint32(vk.MemoryPropertyHostCoherentBit), "HostCoherent"},
		{uint32(vk.MemoryPropertyHostCachedBit), "HostCached"},
		{uint32(vk.MemoryPropertyLazilyAllocatedBit), "LazilyAllocated"},
	})
}

func memoryHeapFlags(f vk.MemoryHeapFlags) string {
	return flagString(uint32(f), []flagName{
		{uint32(vk.MemoryHeapDeviceLocalBit), "DeviceLocal"},
	})
}
