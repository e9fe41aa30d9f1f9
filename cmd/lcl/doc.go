// This file is part of lcl - https://github.com/bholten/lcl
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

// The lcl command is a small showcase for the github.com/bholten/lcl/core
// and github.com/bholten/lcl/builtin packages: it runs LCL scripts given
// as file arguments, evaluates a one-off script passed via -e, or drops
// into a line-at-a-time REPL when given neither.
//
// Usage:
//
//	-debug
//	      print full error causal chains
//	-e script
//	      evaluate script text directly instead of reading a file
//	-maxdepth int
//	      maximum call-stack depth (default 1024)
package main
