// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.

Configuration follows the usual conventions: a file named after the application is searched for under
/etc/<application>, $HOME/.<application>, and the working directory, and any key may be overridden by an
environment variable carrying the upper-cased application name as a prefix.
*/
package xviper
