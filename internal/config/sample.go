package config

// Sample is the starter configuration written by `hooksmith sample-config`.
// It mirrors a typical Python project setup: lint and format with pinned
// remote hooks, type-check through a local hook.
const Sample = `repos:
  - repo: https://github.com/astral-sh/ruff-pre-commit
    rev: v0.8.1
    hooks:
      - id: ruff
        args: [--fix]
      - id: ruff-format
  - repo: https://github.com/codespell-project/codespell
    rev: v2.3.0
    hooks:
      - id: codespell
  - repo: local
    hooks:
      - id: mypy
        name: mypy
        entry: mypy --ignore-missing-imports
        language: system
        files: ^(custom_components)/.+\.(py|pyi)$
        require_serial: true
`
