// Copyright 2026 valicast Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


/*
Package split generates train/test index pairs for evaluating forecasting models on a time
series of length N without letting future observations leak into training.

Schemes:

  - holdout, inv_holdout, rep_holdout: single or repeated cut points.
  - cv, cv_bl, cv_mod, cv_hvbl: k-fold cross-validation, blocked or permuted, with optional gaps.
  - preq_bls, preq_sld_bls, preq_bls_gap: prequential evaluation over adjacent blocks.
  - preq_slide, preq_grow: prequential evaluation over sliding or growing windows.

Every scheme returns a lazy, single-use Sequence. Randomized schemes draw from an explicit
base.RandomGenerator, so the same seed always yields the same splits.
*/
package split
