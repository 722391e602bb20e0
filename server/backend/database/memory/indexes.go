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

package memory

import "github.com/hashicorp/go-memdb"

var (
	tblObjects     = "objects"
	tblBlocks      = "blocks"
	tblRefs        = "refs"
	tblSearch      = "search"
	tblIdempotency = "idempotency"
)

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tblObjects: {
			Name: tblObjects,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
		tblBlocks: {
			Name: tblBlocks,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"object_id": {
					Name:    "object_id",
					Indexer: &memdb.StringFieldIndex{Field: "ObjectID"},
				},
			},
		},
		tblRefs: {
			Name: tblRefs,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"source_block_id": {
					Name:    "source_block_id",
					Indexer: &memdb.StringFieldIndex{Field: "SourceBlockID"},
				},
				"target_object_id": {
					Name:    "target_object_id",
					Indexer: &memdb.StringFieldIndex{Field: "TargetObjectID"},
				},
			},
		},
		tblSearch: {
			Name: tblSearch,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "BlockID"},
				},
				"object_id": {
					Name:    "object_id",
					Indexer: &memdb.StringFieldIndex{Field: "ObjectID"},
				},
			},
		},
		tblIdempotency: {
			Name: tblIdempotency,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Token"},
				},
			},
		},
	},
}
