package symbols

import (
	"reflect"
	"strings"
	"testing"
)

func assertSet(t *testing.T, got Set, exports, imports []string) {
	t.Helper()
	if !reflect.DeepEqual(got.Exports, exports) {
		t.Errorf("Exports = %v, want %v", got.Exports, exports)
	}
	if !reflect.DeepEqual(got.Imports, imports) {
		t.Errorf("Imports = %v, want %v", got.Imports, imports)
	}
}

// ---------------------------------------------------------------------------
// TypeScript / JavaScript
// ---------------------------------------------------------------------------

func TestExtract_TypeScript(t *testing.T) {
	src := strings.Join([]string{
		`import { useState } from 'react'`,
		`import { helper } from './utils/helper'`,
		`import api from '@/lib/api'`,
		`import '../styles/app.css'`,
		``,
		`export default function App() {`,
		`  return null`,
		`}`,
		`export const config = { retries: 3 }`,
		`export interface Props {}`,
		`export type Status = 'ok' | 'bad'`,
		`export type { Props as P }`,
		`export class Store {}`,
		`export async function load() {}`,
	}, "\n")

	got := Extract(src, "tsx")
	assertSet(t, got,
		[]string{"App (default)", "config", "Props", "Status", "Store", "load"},
		[]string{"./utils/helper", "@/lib/api", "../styles/app.css"},
	)
}

func TestExtract_JSExternalImportsExcluded(t *testing.T) {
	src := "import React from 'react'\nimport lodash from \"lodash\"\n"
	got := Extract(src, "js")
	if len(got.Imports) != 0 {
		t.Errorf("external packages are not internal imports: %v", got.Imports)
	}
}

func TestExtract_JSDefaultConst(t *testing.T) {
	src := "const App = () => null\nexport default App\n"
	got := Extract(src, "jsx")
	assertSet(t, got, []string{"App (default)"}, nil)
}

// ---------------------------------------------------------------------------
// Rust
// ---------------------------------------------------------------------------

func TestExtract_Rust(t *testing.T) {
	src := strings.Join([]string{
		`use std::collections::HashMap;`,
		`use crate::scoring::Verdict;`,
		``,
		`pub fn score(input: &str) -> u32 { 0 }`,
		`pub async fn fetch() {}`,
		`pub struct Engine {}`,
		`pub enum Mode { A, B }`,
		`pub const LIMIT: usize = 10;`,
		`pub type Result2 = u8;`,
		`pub trait Scorer {}`,
		`fn private_helper() {}`,
	}, "\n")

	got := Extract(src, "rs")
	assertSet(t, got,
		[]string{"score", "fetch", "Engine", "Mode", "LIMIT", "Result2", "Scorer"},
		[]string{"crate::scoring::Verdict"},
	)
}

// ---------------------------------------------------------------------------
// Python
// ---------------------------------------------------------------------------

func TestExtract_Python(t *testing.T) {
	src := strings.Join([]string{
		`from __future__ import annotations`,
		`import os`,
		`from scoring import weights`,
		``,
		`def compute(value):`,
		`    return value`,
		``,
		`async def fetch():`,
		`    pass`,
		``,
		`def _internal():`,
		`    pass`,
		``,
		`class Engine:`,
		`    pass`,
	}, "\n")

	got := Extract(src, "py")
	assertSet(t, got,
		[]string{"compute", "fetch", "Engine"},
		[]string{"os", "scoring"},
	)
}

// ---------------------------------------------------------------------------
// Go
// ---------------------------------------------------------------------------

func TestExtract_Go(t *testing.T) {
	src := strings.Join([]string{
		`package scoring`,
		``,
		`import "fmt"`,
		``,
		`func Compute(n int) int { return n }`,
		`func internal() {}`,
		`func (e *Engine) Run() {}`,
		`type Engine struct{}`,
		`type helper struct{}`,
	}, "\n")

	got := Extract(src, "go")
	assertSet(t, got, []string{"Compute", "Engine"}, nil)
}

// ---------------------------------------------------------------------------
// Java / Kotlin / Swift
// ---------------------------------------------------------------------------

func TestExtract_Java(t *testing.T) {
	src := strings.Join([]string{
		`import java.util.List;`,
		`import com.example.scoring.Weights;`,
		``,
		`public class Engine {`,
		`    public int compute(int n) { return n; }`,
		`    private void helper() {}`,
		`}`,
		`public interface Scorer {}`,
		`public enum Mode { A }`,
	}, "\n")

	got := Extract(src, "java")
	assertSet(t, got,
		[]string{"Engine", "compute", "Scorer", "Mode"},
		[]string{"com.example.scoring.Weights"},
	)
}

func TestExtract_Kotlin(t *testing.T) {
	src := strings.Join([]string{
		`import kotlinx.coroutines.flow.Flow`,
		`import com.example.scoring.Weights`,
		``,
		`fun compute(n: Int): Int = n`,
		`fun String.shout() = uppercase()`,
		`data class Verdict(val score: Int)`,
		`class Engine`,
		`object Registry`,
		`interface Scorer`,
	}, "\n")

	got := Extract(src, "kt")
	assertSet(t, got,
		[]string{"compute", "Verdict", "Engine", "Registry", "Scorer"},
		[]string{"com.example.scoring.Weights"},
	)
}

func TestExtract_Swift(t *testing.T) {
	src := strings.Join([]string{
		`import Foundation`,
		`import Alamofire`,
		``,
		`func compute(_ n: Int) -> Int { n }`,
		`class Engine {}`,
		`struct Verdict {}`,
		`enum Mode {}`,
		`protocol Scorer {}`,
	}, "\n")

	got := Extract(src, "swift")
	assertSet(t, got,
		[]string{"compute", "Engine", "Verdict", "Mode", "Scorer"},
		[]string{"Alamofire"},
	)
}

// ---------------------------------------------------------------------------
// General behavior
// ---------------------------------------------------------------------------

func TestExtract_UnsupportedExtension(t *testing.T) {
	got := Extract("export const x = 1", "rb")
	if len(got.Exports) != 0 || len(got.Imports) != 0 {
		t.Errorf("unsupported extension should yield empty set, got %+v", got)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	src := "export const x = 1\nexport const x = 2\n"
	got := Extract(src, "ts")
	if len(got.Exports) != 1 {
		t.Errorf("duplicate export collected: %v", got.Exports)
	}
}

func TestExtract_OversizedInput(t *testing.T) {
	src := "export const x = 1\n" + strings.Repeat("a", maxScanSize)
	got := Extract(src, "ts")
	if len(got.Exports) != 0 {
		t.Error("oversized input should be skipped entirely")
	}
}

func TestExtract_SkipsComments(t *testing.T) {
	src := "// export const fake = 1\nexport const real = 1\n"
	got := Extract(src, "ts")
	assertSet(t, got, []string{"real"}, nil)
}
