package benchmark

var definitions = []Definition{
	{
		Key:    "twiggy",
		Name:   "twiggy",
		URL:    "https://github.com/rustwasm/twiggy",
		Kind:   KindWasmPack,
		Subdir: "wasm-api",
		Crate:  "twiggy_wasm_api",
	},
	{
		Key:    "dodrio_todomvc",
		Name:   "dodrio-todomvc",
		URL:    "https://github.com/fitzgen/dodrio",
		Kind:   KindWasmPack,
		Subdir: "examples/todomvc",
		Crate:  "dodrio_todomvc",
	},
	{
		Key:    "source_map_mappings",
		Name:   "source-map-mappings",
		URL:    "https://github.com/fitzgen/source-map-mappings",
		Kind:   KindCargo,
		Subdir: "source-map-mappings-wasm-api",
		Crate:  "source_map_mappings_wasm_api",
	},
	{
		Key:   "game_of_life",
		Name:  "game-of-life",
		URL:   "https://github.com/rustwasm/wasm_game_of_life",
		Kind:  KindWasmPack,
		Crate: "wasm_game_of_life",
	},
	{
		Key:    "rust_webpack_template",
		Name:   "rust-webpack-template",
		URL:    "https://github.com/rustwasm/rust-webpack-template",
		Kind:   KindWebpack,
		Subdir: "crate",
		Crate:  "rust_webpack",
	},
	{
		Key:    "squoosh_rotate",
		Name:   "squoosh-rotate",
		URL:    "https://github.com/GoogleChromeLabs/squoosh",
		Kind:   KindCargo,
		Subdir: "codecs/rotate",
		Crate:  "rotate",
	},
}

// Definitions returns every known benchmark in registry order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup finds a benchmark by its command-line key.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
