package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsComponentModule(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name: "function component with framework import",
			text: `import React from 'react';
export function Button() {
  return <button>Click</button>;
}`,
			expected: true,
		},
		{
			name: "arrow component with named framework import",
			text: `import { useState } from "react";
const Counter = () => {
  const [n, setN] = useState(0);
  return <span>{n}</span>;
};`,
			expected: true,
		},
		{
			name: "markup return without framework import",
			text: `export default function Page() {
  return (
    <main />
  );
}`,
			expected: true,
		},
		{
			name:     "plain utility",
			text:     `export function add(a, b) { return a + b }`,
			expected: false,
		},
		{
			name: "framework import without component shape",
			text: `import React from 'react';
export const VERSION = React.version;`,
			expected: false,
		},
		{
			name:     "class component is a function module",
			text:     `export default class Foo extends React.Component { render(){ return <div/> } }`,
			expected: false,
		},
		{
			name:     "comparison after return is an accepted false positive",
			text:     `function below(a) { return (a) < 1 }`,
			expected: true,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsComponentModule(tt.text))
		})
	}
}

func TestIsComponentModule_Deterministic(t *testing.T) {
	text := `import React from 'react';
const Card = (props) => <div>{props.title}</div>;`

	first := IsComponentModule(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsComponentModule(text))
	}
}
