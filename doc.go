// Package panelwire reads and writes line-puzzle panels between the flat
// array layout a game runtime keeps in memory and an editable grid model.
//
// Everything lives in subpackages, leaves first:
//
//	wire/       bit catalogs, field catalog, Panel arrays, Storage, Load/Store
//	decoration/ cell symbol codes, colours and colour modes
//	symmetry/   reflection families and direction mapping
//	grid/       the W×H grid model and its JSON document form
//	glyph/      vector templates for symbols the runtime cannot draw
//	codec/      Decode (wire → grid) and Encode (grid → wire)
//	store/      in-memory and SQL Storage implementations
//	preview/    PNG previews of a panel
//	config/     service configuration and hot reload
//	api/        HTTP routes and the websocket event hub
//
// A grid is laid out on doubled coordinates:
//
//	(0,0)─(1,0)─(2,0)     even,even  intersection
//	  │     ▒     │       odd,even   horizontal edge
//	(0,1) (1,1) (2,1)     even,odd   vertical edge
//	  │     ▒     │       odd,odd    cell
//	(0,2)─(1,2)─(2,2)
//
//	go install github.com/katalvlaran/panelwire/cmd/panelwire@latest
package panelwire
