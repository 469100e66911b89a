// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package paco encodes ranking results into URL-safe share codes.

# Format

A code is "p_" followed by unpadded base64url of compact JSON:

	{"v":"1.0","p":"<pack id>","t":<unix seconds>,"a":"pairwise",
	 "r":[{"i":"<card id>","c":"<content>","r":1,"s":100,"w":2,"l":0,"img":"..."}]}

Scores are stored as whole percentages, so a decoded score has two decimal
places at most.

# Usage

	code, err := paco.Encode(data)
	link := paco.ShareURL(code, cfg.BaseURL)
	short, err := paco.ShortCode(code)

	data, err := paco.Decode(code) // errors wrap paco.ErrInvalidCode
*/
package paco
