package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const samplePatch = `From a1b2c3 Mon Sep 17 00:00:00 2001
From: Octo Cat <12345+octocat@users.noreply.github.com>
Date: Tue, 5 Mar 2024 10:00:00 +0000
Subject: [PATCH] fix build

Signed-off-by: Octo Cat <octo@example.com>
---
 main.go | 2 +-
`

// TestExtractPatchEmail tests patch header extraction
func TestExtractPatchEmail(t *testing.T) {
	email := ExtractPatchEmail([]byte(samplePatch))
	assert.Equal(t, "octo@example.com", email, "noreply author must be skipped for the sign-off")
}

// TestExtractPatchEmail_OnlyNoreply tests that placeholder-only patches miss
func TestExtractPatchEmail_OnlyNoreply(t *testing.T) {
	patch := "From: Ghost <ghost@users.noreply.github.com>\n"
	assert.Empty(t, ExtractPatchEmail([]byte(patch)))
}

// TestExtractPatchEmail_NoAddresses tests plain text
func TestExtractPatchEmail_NoAddresses(t *testing.T) {
	assert.Empty(t, ExtractPatchEmail([]byte("diff --git a/main.go b/main.go")))
}
