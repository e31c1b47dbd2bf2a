package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `
       _     _               _ _       _
__   _(_) __| |_____      __(_) |_ ___| |__
\ \ / / |/ _' / __\ \ /\ / /| | __/ __| '_ \
 \ V /| | (_| \__ \\ V  V / | | || (__| | | |
  \_/ |_|\__,_|___/ \_/\_/  |_|\__\___|_| |_|`
