package vkobj

import (
	"github.com/andewx/vkobj/internal/native"
)

// ExtensionProperties mirrors VkExtensionProperties.
type ExtensionProperties struct {
	Name        string
	SpecVersion uint32
}

// LayerProperties mirrors VkLayerProperties.
type LayerProperties struct {
	Name                  string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

// InstanceExtensions lists the instance extensions provided by the driver,
// or by layer when it is not empty.
func InstanceExtensions(d Dispatcher, layer string) ([]ExtensionProperties, error) {
	var a native.Arena
	defer a.Free()

	var pLayer uintptr
	if layer != "" {
		pLayer = native.Addr(a.CString(layer))
	}
	list, err := enumerate[native.ExtensionProperties](commands{d: d},
		"vkEnumerateInstanceExtensionProperties", pLayer)
	if err != nil {
		return nil, err
	}
	return convertExtensions(list), nil
}

// InstanceLayers lists the layers available on the platform.
func InstanceLayers(d Dispatcher) ([]LayerProperties, error) {
	list, err := enumerate[native.LayerProperties](commands{d: d}, "vkEnumerateInstanceLayerProperties")
	if err != nil {
		return nil, err
	}
	layers := make([]LayerProperties, len(list))
	for i := range list {
		layers[i] = LayerProperties{
			Name:                  native.GoString(list[i].LayerName[:]),
			SpecVersion:           list[i].SpecVersion,
			ImplementationVersion: list[i].ImplementationVersion,
			Description:           native.GoString(list[i].Description[:]),
		}
	}
	return layers, nil
}

// Extensions lists the device extensions of the physical device.
func (p *PhysicalDevice) Extensions(layer string) ([]ExtensionProperties, error) {
	var a native.Arena
	defer a.Free()

	var pLayer uintptr
	if layer != "" {
		pLayer = native.Addr(a.CString(layer))
	}
	list, err := enumerate[native.ExtensionProperties](p.instance.cmds,
		"vkEnumerateDeviceExtensionProperties", p.handle, pLayer)
	if err != nil {
		return nil, err
	}
	return convertExtensions(list), nil
}

func convertExtensions(list []native.ExtensionProperties) []ExtensionProperties {
	exts := make([]ExtensionProperties, len(list))
	for i := range list {
		exts[i] = ExtensionProperties{
			Name:        native.GoString(list[i].ExtensionName[:]),
			SpecVersion: list[i].SpecVersion,
		}
	}
	return exts
}

// ExtensionNames returns the names of exts.
func ExtensionNames(exts []ExtensionProperties) []string {
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = e.Name
	}
	return names
}

// LayerNames returns the names of layers.
func LayerNames(layers []LayerProperties) []string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name
	}
	return names
}

// RequireExtensions splits wanted into the names present in available and
// the ones missing, keeping the order of wanted.
func RequireExtensions(available, wanted []string) (present, missing []string) {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[name] = struct{}{}
	}
	for _, name := range wanted {
		if _, ok := have[name]; ok {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing
}
