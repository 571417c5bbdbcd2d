package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/netris/ecs"
)

func NewComponentInspectorWindow() ComponentInspectorWindow {
	return ComponentInspectorWindow{}
}

// Render shows every component of the selected entity. Scalar fields are
// edited in place through the pointer the storage hands out.
func (ci *ComponentInspectorWindow) Render(storage *ecs.Storage, selected ecs.EntityId, ok bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !ok {
		imgui.Text("No entity selected")
		return
	}
	ci.selectedEntityId = selected

	if !storage.Alive(selected) {
		imgui.Text(fmt.Sprintf("Entity %s was deleted", selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", selected))
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(selected) {
		component := storage.GetComponent(selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(reflect.ValueOf(component).Elem(), "##"+compType.String())
			imgui.TreePop()
		}
	}
}

func renderValue(val reflect.Value, idPrefix string) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal, idPrefix+"."+field.Name)
	}
}

func renderField(name string, val reflect.Value, id string) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(clampInt(val.Int(), math.MinInt32, math.MaxInt32))
		labeled(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(min(val.Uint(), math.MaxInt32))
		labeled(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		labeled(name, 150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		labeled(name, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if len(globalReflectionCache.GetFields(val.Type())) == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Type()))
			return
		}
		if imgui.TreeNodeStr(name + id) {
			renderValue(val, id)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func labeled(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

func clampInt(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}
