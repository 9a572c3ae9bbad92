package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platformer/ecs"
)

type EntityInfo struct {
	ID         ecs.EntityId
	Name       string
	Asset      string
	Components []string
}

// EntityBrowser lists the entities of a store and tracks the selection
type EntityBrowser struct {
	store              *ecs.Store
	entities           []EntityInfo
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
	sortColumn         int
	sortAscending      bool
}

func NewEntityBrowser(store *ecs.Store, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		store:              store,
		maxEntitiesPerPage: maxEntitiesPerPage,
		sortAscending:      true,
	}
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	filtered := eb.Filtered()

	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Asset")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.Filtered()
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(entity.Asset)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Refresh rebuilds the entity list from the store
func (eb *EntityBrowser) Refresh() {
	eb.entities = eb.entities[:0]

	for id := range eb.store.Entities() {
		info := EntityInfo{ID: id}
		info.Name, _ = eb.store.Name(id)
		info.Asset, _ = eb.store.Asset(id)

		if eb.store.Object(id) != nil {
			info.Components = append(info.Components, "Object")
		}
		if eb.store.Movement(id) != nil {
			info.Components = append(info.Components, "Movement")
		}
		if in := eb.store.Input(id); in != nil {
			info.Components = append(info.Components, "Input("+in.Kind().String()+")")
		}

		eb.entities = append(eb.entities, info)
	}

	if eb.selectedEntityId != ecs.Nil && !eb.store.Exists(eb.selectedEntityId) {
		eb.selectedEntityId = ecs.Nil
	}

	eb.sortEntities()
}

// SortBy orders the list by column: id, name, asset or components
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Asset < b.Asset
		case 3:
			less = strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		default:
			less = a.ID < b.ID
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter sets the search text
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Filtered returns the entities matching the search text
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		fields := []string{
			entity.ID.String(),
			strings.ToLower(entity.Name),
			strings.ToLower(entity.Asset),
			strings.ToLower(strings.Join(entity.Components, " ")),
		}
		for _, f := range fields {
			if strings.Contains(f, filterLower) {
				filtered = append(filtered, entity)
				break
			}
		}
	}

	return filtered
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}

func (eb *EntityBrowser) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
