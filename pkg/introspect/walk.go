package introspect

// Walk visits every property reachable from info in table order,
// depth-first, calling fn with the dotted path of the property and its
// descriptor. The descriptor is nil for members whose type exposes no
// table. Walk visits descriptors only; it needs no object instance.
//
// Descriptor trees are authored statically and are finite, so Walk
// terminates even though it does not track visited nodes.
func Walk(info *TypeInfo, fn func(path string, info *TypeInfo)) {
	if info == nil {
		return
	}
	walk(info, "", fn)
}

func walk(info *TypeInfo, prefix string, fn func(string, *TypeInfo)) {
	for i := range info.properties {
		p := &info.properties[i]
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}
		fn(path, p.TypeInfo)
		if p.TypeInfo != nil {
			walk(p.TypeInfo, path, fn)
		}
	}
}
