/*
Copyright © 2026 The NutriGrade Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
)

// InputError is returned when analyze gets no usable input.
func InputError(reason string) error {
	msg := `Nothing to analyze: %s

<em>Usage:</em>
  nutrigrade analyze "Water, sugar, INS 211"
  nutrigrade analyze --barcode 8901058851298
  nutrigrade analyze --file ingredients.txt`
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalyzeInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad input: %s", fn, reason),
	}
}

// ProductNotFoundError is returned when Open Food Facts does not know
// the barcode.
func ProductNotFoundError(barcode string) error {
	msg := "Product <em>%s</em> is not found in Open Food Facts"
	vars := []any{barcode}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalyzeProductNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: product %s not found", fn, barcode),
	}
}

// NoIngredientsError is returned when a product has no ingredients text.
func NoIngredientsError(barcode string) error {
	msg := `Product <em>%s</em> has no ingredients text

<em>How to fix:</em>
  Copy ingredients from the label and run
  nutrigrade analyze "<ingredients>"`
	vars := []any{barcode}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.AnalyzeNoIngredientsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no ingredients for %s", fn, barcode),
	}
}
