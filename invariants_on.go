// Copyright 2025 The Collect-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build invariants

package freq

// invariants enables full self-checks after every mutation. Expensive: each
// check walks the entire container.
const invariants = true

// defaultCeiling under invariants is deliberately small so that ordinary
// test inputs spill into the sparse tier.
const defaultCeiling = 0x80
