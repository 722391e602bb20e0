/*
 * Copyright 2025 The Inkstone Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package patches

import (
	"context"

	"github.com/inkstone-notes/inkstone/api/types"
	"github.com/inkstone-notes/inkstone/pkg/document/block"
	"github.com/inkstone-notes/inkstone/pkg/document/operations"
	"github.com/inkstone-notes/inkstone/pkg/document/orderkey"
	"github.com/inkstone-notes/inkstone/server/backend"
)

// TemplateBlock is one block of a document template. Templates are
// instantiated when an object of a given type is created, seeding its
// block document.
type TemplateBlock struct {
	// Type is the block type.
	Type block.Type `json:"type"`

	// Content is the typed content payload.
	Content block.Content `json:"content"`

	// Children are nested template blocks.
	Children []TemplateBlock `json:"children,omitempty"`
}

// ApplyTemplate instantiates the template at the end of the object's root
// level as a single patch. Block ids are assigned up front so the whole
// template lands in one atomic operation list.
func ApplyTemplate(
	ctx context.Context,
	be *backend.Backend,
	objectID types.ID,
	baseDocVersion int64,
	template []TemplateBlock,
) (*types.PatchResult, error) {
	if len(template) == 0 {
		info, err := be.DB.FindObjectInfoByID(ctx, objectID)
		if err != nil {
			return nil, err
		}
		return &types.PatchResult{DocVersion: info.DocVersion}, nil
	}

	ops := flattenTemplate(template, "")
	return Apply(ctx, be, &types.PatchRequest{
		ObjectID:       objectID,
		BaseDocVersion: baseDocVersion,
	}, ops)
}

// flattenTemplate turns the template tree into end-placed inserts,
// depth-first, threading the pre-assigned parent ids through.
func flattenTemplate(template []TemplateBlock, parentID types.ID) []operations.Operation {
	var ops []operations.Operation
	for _, tpl := range template {
		blockID := types.NewID()
		ops = append(ops, operations.NewInsert(
			blockID,
			parentID,
			orderkey.Placement{Position: orderkey.End},
			tpl.Type,
			tpl.Content,
		))
		ops = append(ops, flattenTemplate(tpl.Children, blockID)...)
	}

	return ops
}
